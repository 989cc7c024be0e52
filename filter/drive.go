package filter

import "github.com/kbukum/pktchain/packet"

// Feed pushes pkt (nil for end-of-stream) into f and pulls until f needs
// more input or is drained, passing every produced packet to emit. It
// returns the final status; StatusNeedMoreInput and StatusEndOfStream are
// not errors.
func Feed(f Filter, pkt *packet.Packet, emit func(*packet.Packet) error) (Status, error) {
	if err := f.Push(pkt); err != nil {
		return StatusError, err
	}
	for {
		out, st, err := f.Pull()
		switch st {
		case StatusOK:
			if err := emit(out); err != nil {
				return StatusError, err
			}
		case StatusError:
			return StatusError, err
		default:
			return st, nil
		}
	}
}

// Process feeds every input into f, signals end-of-stream and returns all
// produced packets in order. On error the packets produced so far are
// returned with it.
func Process(f Filter, inputs []*packet.Packet) ([]*packet.Packet, error) {
	var out []*packet.Packet
	emit := func(p *packet.Packet) error {
		out = append(out, p)
		return nil
	}

	for _, in := range inputs {
		st, err := Feed(f, in, emit)
		if err != nil {
			return out, err
		}
		if st == StatusEndOfStream {
			return out, nil
		}
	}
	_, err := Feed(f, nil, emit)
	return out, err
}
