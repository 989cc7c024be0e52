package filter

import (
	"bytes"
	"math"
	"strconv"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/packet"
)

// ConcatName is the registry name of the concat filter.
const ConcatName = "concat"

// MaxPacketSize bounds the payload a filter may build.
const MaxPacketSize = math.MaxInt32

// ConcatConfig holds the concat options.
type ConcatConfig struct {
	// Nr is the number of input packets joined into each output.
	Nr int `option:"nr" validate:"min=1,max=16"`
}

// DefaultConcatConfig returns the concat defaults.
func DefaultConcatConfig() ConcatConfig {
	return ConcatConfig{Nr: 2}
}

// Concat joins every Nr input packets into one output packet. At
// end-of-stream a partial group is emitted once.
type Concat struct {
	cfg   ConcatConfig
	in    Input
	buf   bytes.Buffer
	count int
	limit int
	done  bool
	err   error
}

// NewConcat creates a concat filter from cfg.
func NewConcat(cfg ConcatConfig) (*Concat, error) {
	if err := checkOptions(ConcatName, &cfg); err != nil {
		return nil, err
	}
	return newConcat(cfg), nil
}

func newConcat(cfg ConcatConfig) *Concat {
	return &Concat{
		cfg:   cfg,
		in:    Input{Owner: ConcatName},
		limit: MaxPacketSize,
	}
}

func (c *Concat) Name() string { return ConcatName }

// Count returns the number of packets accumulated since the last emission.
func (c *Concat) Count() int { return c.count }

func (c *Concat) Push(pkt *packet.Packet) error { return c.in.Push(pkt) }

func (c *Concat) Pull() (*packet.Packet, Status, error) {
	if c.err != nil {
		return nil, StatusError, c.err
	}
	if c.done {
		return nil, StatusEndOfStream, nil
	}

	for {
		pkt, st := c.in.Next()
		switch st {
		case StatusNeedMoreInput:
			return nil, StatusNeedMoreInput, nil
		case StatusEndOfStream:
			c.done = true
			if c.count > 0 {
				return c.emit(), StatusOK, nil
			}
			return nil, StatusEndOfStream, nil
		}

		size := c.buf.Len() + pkt.Len()
		if size > c.limit {
			c.err = errors.AllocationFailure(ConcatName, size)
			return nil, StatusError, c.err
		}
		c.buf.Write(pkt.Bytes())
		c.count++
		if c.count == c.cfg.Nr {
			return c.emit(), StatusOK, nil
		}
	}
}

func (c *Concat) emit() *packet.Packet {
	out := packet.New(bytes.Clone(c.buf.Bytes()))
	c.buf.Reset()
	c.count = 0
	return out
}

// ConcatKind describes the concat filter for a Registry.
func ConcatKind() Kind {
	return Kind{
		Name:        ConcatName,
		Description: "Join every nr packets into one",
		Options: []OptionDoc{
			{Name: "nr", Type: "int", Default: strconv.Itoa(DefaultConcatConfig().Nr), Range: "1..16", Help: "packets per output"},
		},
		New: func(opts map[string]string) (Filter, error) {
			cfg := DefaultConcatConfig()
			if err := BindOptions(ConcatName, opts, &cfg); err != nil {
				return nil, err
			}
			return newConcat(cfg), nil
		},
	}
}
