package filter

import (
	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/packet"
)

// Filter is a single stateful transformation stage.
type Filter interface {
	// Name returns the filter kind name.
	Name() string
	// Push hands one packet to the filter. A nil packet signals end-of-stream.
	// The filter owns pkt after a successful Push.
	Push(pkt *packet.Packet) error
	// Pull returns the next produced packet. err is non-nil iff the status is
	// StatusError.
	Pull() (*packet.Packet, Status, error)
}

// Input is the single-packet input slot every filter reads from.
type Input struct {
	// Owner names the filter in protocol errors.
	Owner string

	pkt *packet.Packet
	eof bool
}

// Push stores pkt in the slot. A nil pkt marks end-of-stream and may be
// pushed any number of times.
func (in *Input) Push(pkt *packet.Packet) error {
	if pkt == nil {
		in.eof = true
		return nil
	}
	if in.eof {
		return errors.InvalidState(in.Owner, "packet pushed after end of stream")
	}
	if in.pkt != nil {
		return errors.InvalidState(in.Owner, "previous packet not consumed")
	}
	in.pkt = pkt
	return nil
}

// Next takes the buffered packet. It reports StatusEndOfStream once the slot
// is empty and end-of-stream was pushed, StatusNeedMoreInput otherwise.
func (in *Input) Next() (*packet.Packet, Status) {
	if in.pkt != nil {
		pkt := in.pkt
		in.pkt = nil
		return pkt, StatusOK
	}
	if in.eof {
		return nil, StatusEndOfStream
	}
	return nil, StatusNeedMoreInput
}

// EOF reports whether end-of-stream was pushed.
func (in *Input) EOF() bool { return in.eof }
