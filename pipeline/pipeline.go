package pipeline

import (
	"context"
	"iter"
)

// Iterator yields the values of a stream on demand.
type Iterator[T any] interface {
	// Next returns the next value, or ok == false once the stream ends.
	Next(ctx context.Context) (v T, ok bool, err error)
	Close() error
}

// Pipeline describes a stream lazily. Nothing is read until the pipeline is
// consumed, and each consumption creates its iterators afresh.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// From wraps an existing iterator. The result can be consumed once.
func From[T any](it Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: func(context.Context) Iterator[T] { return it }}
}

// FromSlice streams the elements of items.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{create: func(context.Context) Iterator[T] {
		return &sliceIter[T]{items: items}
	}}
}

// All consumes p as a range-over-func sequence. An error is yielded once,
// with the zero value, and ends the sequence. The underlying iterator is
// closed when the loop ends, however it ends.
func (p *Pipeline[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.create(ctx)
		defer it.Close()
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// ForEach calls fn for every value of p and stops at the first error,
// either from the stream or from fn.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	for v, err := range p.All(ctx) {
		if err != nil {
			return err
		}
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Collect returns the values of p. On error the values read before it are
// returned along with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

type sliceIter[T any] struct {
	items []T
	next  int
}

func (it *sliceIter[T]) Next(context.Context) (T, bool, error) {
	if it.next == len(it.items) {
		var zero T
		return zero, false, nil
	}
	it.next++
	return it.items[it.next-1], true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
