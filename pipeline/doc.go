// Package pipeline provides lazy, pull-based streams of values and runs
// packet streams through filters.
//
// No work happens until values are pulled with All, ForEach or Collect.
// Each stage pulls from the previous one on demand, so a filter chain only
// receives a packet when it reports that it needs more input.
//
// # Operators
//
//   - Map: transform each value
//   - Where: keep values matching a predicate
//   - Tap: side-effect without altering the value
//   - Apply: run a packet stream through a filter.Filter
//
// # Usage
//
//	chain, _ := descriptor.Build("tok,concat", filter.DefaultRegistry())
//	src := pipeline.FromReader(os.Stdin, "\n")
//	out := pipeline.Apply(src, chain)
//	for p, err := range out.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p)
//	}
//
// Pipelines are single-threaded; a pipeline holding a filter may be run
// only once.
package pipeline
