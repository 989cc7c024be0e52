package pipeline

import "context"

// Map applies fn to every value. An error from fn ends the stream.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{create: func(ctx context.Context) Iterator[O] {
		return &mapIter[I, O]{src: p.create(ctx), fn: fn}
	}}
}

// Where drops the values for which keep is false.
func Where[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return &Pipeline[T]{create: func(ctx context.Context) Iterator[T] {
		return &whereIter[T]{src: p.create(ctx), keep: keep}
	}}
}

// Tap calls fn on every value as it passes.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return Map(p, func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	})
}

type mapIter[I, O any] struct {
	src Iterator[I]
	fn  func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var out O
	in, ok, err := it.src.Next(ctx)
	if err == nil && ok {
		out, err = it.fn(ctx, in)
	}
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, ok, nil
}

func (it *mapIter[I, O]) Close() error { return it.src.Close() }

type whereIter[T any] struct {
	src  Iterator[T]
	keep func(T) bool
}

func (it *whereIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil || !ok || it.keep(v) {
			return v, ok && err == nil, err
		}
	}
}

func (it *whereIter[T]) Close() error { return it.src.Close() }
