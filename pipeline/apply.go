package pipeline

import (
	"context"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/packet"
)

// Apply runs the packets of p through f. A packet is pulled from p only
// when f reports StatusNeedMoreInput; once p is exhausted f receives
// end-of-stream and the pipeline ends when f is drained. A filter error
// ends the pipeline with that error, as does a nil packet from p.
func Apply(p *Pipeline[*packet.Packet], f filter.Filter) *Pipeline[*packet.Packet] {
	return &Pipeline[*packet.Packet]{
		create: func(ctx context.Context) Iterator[*packet.Packet] {
			return &applyIter{source: p.create(ctx), f: f}
		},
	}
}

type applyIter struct {
	source Iterator[*packet.Packet]
	f      filter.Filter
	eos    bool
	done   bool
}

func (it *applyIter) Next(ctx context.Context) (*packet.Packet, bool, error) {
	for !it.done {
		pkt, st, err := it.f.Pull()
		switch st {
		case filter.StatusOK:
			return pkt, true, nil
		case filter.StatusError:
			it.done = true
			return nil, false, err
		case filter.StatusEndOfStream:
			it.done = true
			return nil, false, nil
		}

		if it.eos {
			it.done = true
			return nil, false, errors.InvalidState(it.f.Name(), "filter needs input after end of stream")
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		in, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		switch {
		case !ok:
			it.eos = true
		case in == nil:
			it.done = true
			return nil, false, errors.InvalidInput("packet", "source yielded a nil packet")
		}
		if err := it.f.Push(in); err != nil {
			it.done = true
			return nil, false, err
		}
	}
	return nil, false, nil
}

func (it *applyIter) Close() error { return it.source.Close() }
