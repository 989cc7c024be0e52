package filter

// Status is the outcome of a Pull.
type Status int

const (
	// StatusOK means a packet was produced.
	StatusOK Status = iota
	// StatusNeedMoreInput means the filter needs a Push before it can produce.
	StatusNeedMoreInput
	// StatusEndOfStream means the filter is drained.
	StatusEndOfStream
	// StatusError means processing failed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNeedMoreInput:
		return "need_more_input"
	case StatusEndOfStream:
		return "end_of_stream"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
