package packet

// Packet is an immutable byte payload.
type Packet struct {
	data []byte
}

// New wraps data in a Packet. The packet takes ownership of the slice.
func New(data []byte) *Packet {
	return &Packet{data: data}
}

// FromString creates a Packet holding a copy of s.
func FromString(s string) *Packet {
	return &Packet{data: []byte(s)}
}

// Bytes returns the payload. Callers must treat it as read-only.
func (p *Packet) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.data
}

// Len returns the payload size in bytes.
func (p *Packet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.data)
}

// String returns the payload as a string.
func (p *Packet) String() string {
	if p == nil {
		return ""
	}
	return string(p.data)
}

// Strings converts packets to their string payloads.
func Strings(pkts []*Packet) []string {
	out := make([]string, len(pkts))
	for i, p := range pkts {
		out[i] = p.String()
	}
	return out
}

// FromStrings creates one packet per string.
func FromStrings(ss ...string) []*Packet {
	out := make([]*Packet, len(ss))
	for i, s := range ss {
		out[i] = FromString(s)
	}
	return out
}
