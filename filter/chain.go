package filter

import (
	"strings"

	"github.com/kbukum/pktchain/packet"
)

// ChainName is the Name reported by a Chain.
const ChainName = "chain"

// Chain links filters so that each stage feeds the next. A Chain is itself
// a Filter: packets pushed into it enter the first stage and Pull returns
// what the last stage produces.
type Chain struct {
	in     Input
	stages []Filter
	desc   string

	// idx is the stage to feed next; stage idx-1 (or the input slot when
	// idx is 0) is pulled to feed it.
	idx int
	err error
}

// NewChain links stages in order. With no stages the chain passes packets
// through unchanged.
func NewChain(stages ...Filter) *Chain {
	if len(stages) == 0 {
		stages = []Filter{NewNull()}
	}
	return &Chain{
		in:     Input{Owner: ChainName},
		stages: stages,
	}
}

func (c *Chain) Name() string { return ChainName }

// Stages returns the linked stages in order.
func (c *Chain) Stages() []Filter {
	out := make([]Filter, len(c.stages))
	copy(out, c.stages)
	return out
}

// SetDescriptor records the descriptor the chain was built from.
func (c *Chain) SetDescriptor(desc string) { c.desc = desc }

// String returns the descriptor the chain was built from, or its stage
// names joined by commas.
func (c *Chain) String() string {
	if c.desc != "" {
		return c.desc
	}
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name()
	}
	return strings.Join(names, ",")
}

func (c *Chain) Push(pkt *packet.Packet) error { return c.in.Push(pkt) }

// Pull pulls backward from the last stage until some stage produces, then
// pushes the packet forward one stage at a time. End-of-stream travels
// forward as a nil push. An error from any stage is returned as is and
// every later Pull returns it again.
func (c *Chain) Pull() (*packet.Packet, Status, error) {
	if c.err != nil {
		return nil, StatusError, c.err
	}

	for {
		var (
			pkt *packet.Packet
			st  Status
			err error
		)
		if c.idx == 0 {
			pkt, st = c.in.Next()
		} else {
			pkt, st, err = c.stages[c.idx-1].Pull()
		}

		switch st {
		case StatusError:
			c.err = err
			return nil, StatusError, err
		case StatusNeedMoreInput:
			if c.idx == 0 {
				return nil, StatusNeedMoreInput, nil
			}
			c.idx--
			continue
		}

		if c.idx == len(c.stages) {
			return pkt, st, nil
		}

		if st == StatusEndOfStream {
			pkt = nil
		}
		if err := c.stages[c.idx].Push(pkt); err != nil {
			c.err = err
			return nil, StatusError, err
		}
		c.idx++
	}
}
