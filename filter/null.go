package filter

import "github.com/kbukum/pktchain/packet"

// NullName is the registry name of the pass-through filter.
const NullName = "null"

// Null forwards every packet unchanged.
type Null struct {
	in Input
}

// NewNull creates a pass-through filter.
func NewNull() *Null {
	return &Null{in: Input{Owner: NullName}}
}

func (f *Null) Name() string { return NullName }

func (f *Null) Push(pkt *packet.Packet) error { return f.in.Push(pkt) }

func (f *Null) Pull() (*packet.Packet, Status, error) {
	pkt, st := f.in.Next()
	return pkt, st, nil
}

// NullKind describes the null filter for a Registry.
func NullKind() Kind {
	return Kind{
		Name:        NullName,
		Description: "Pass packets through unchanged",
		New: func(opts map[string]string) (Filter, error) {
			if err := BindOptions(NullName, opts, &struct{}{}); err != nil {
				return nil, err
			}
			return NewNull(), nil
		},
	}
}
