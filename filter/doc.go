// Package filter implements stateful packet filters that talk a pull-based
// push/pull protocol, and the Chain that links them.
//
// A Filter accepts one packet at a time through Push and hands out produced
// packets through Pull. Pull reports one of four statuses:
//
//   - StatusOK: a packet was produced; pull again
//   - StatusNeedMoreInput: push one packet (or nil for end-of-stream) and retry
//   - StatusEndOfStream: the filter is drained and stays drained
//   - StatusError: processing failed; the error is returned alongside
//
// Built-in kinds:
//
//   - null: pass-through
//   - tok: splits packets on a delimiter byte set, then emits a flush literal
//     a configurable number of times at end-of-stream
//   - concat: joins every nr packets into one
//
// # Usage
//
//	reg := filter.DefaultRegistry()
//	tok, _ := reg.Construct("tok", map[string]string{"delim": ";"})
//	cat, _ := reg.Construct("concat", nil)
//	chain := filter.NewChain(tok, cat)
//	out, err := filter.Process(chain, packet.FromStrings("a;b;c", "d"))
//
// A Chain is itself a Filter, so chains nest. Filters are not safe for
// concurrent use; a Registry is.
package filter
