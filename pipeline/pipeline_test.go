package pipeline

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	p := From[string](&sliceIter[string]{items: []string{"a", "b"}})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestMap(t *testing.T) {
	doubled := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestWhere(t *testing.T) {
	evens := Where(FromSlice([]int{1, 2, 3, 4}), func(n int) bool { return n%2 == 0 })
	got, _ := Collect(context.Background(), evens)
	if !slices.Equal(got, []int{2, 4}) {
		t.Errorf("got %v, want [2 4]", got)
	}
}

func TestTap(t *testing.T) {
	var seen []string
	p := Tap(FromSlice([]string{"a", "b"}), func(_ context.Context, s string) error {
		seen = append(seen, s)
		return nil
	})
	got, _ := Collect(context.Background(), p)
	if !slices.Equal(got, []string{"a", "b"}) || !slices.Equal(seen, got) {
		t.Errorf("got %v, seen %v", got, seen)
	}
}

func TestForEach(t *testing.T) {
	var b strings.Builder
	err := ForEach(context.Background(), FromSlice([]string{"x", "y"}), func(_ context.Context, s string) error {
		b.WriteString(s)
		return nil
	})
	if err != nil || b.String() != "xy" {
		t.Errorf("got %q/%v", b.String(), err)
	}
}

func TestForEach_FnError(t *testing.T) {
	boom := errors.New("sink full")
	var calls int
	err := ForEach(context.Background(), FromSlice([]int{1, 2}), func(context.Context, int) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("err = %v after %d calls", err, calls)
	}
}

type closeTracker struct {
	sliceIter[int]
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestAll_ClosesOnBreak(t *testing.T) {
	it := &closeTracker{sliceIter: sliceIter[int]{items: []int{1, 2, 3}}}
	var got []int
	for v, err := range From[int](it).All(context.Background()) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
	if !it.closed {
		t.Error("expected iterator to be closed after break")
	}
}

func TestAll_YieldsErrorOnce(t *testing.T) {
	boom := errors.New("bad value")
	p := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	var vals []int
	var errs []error
	for v, err := range p.All(context.Background()) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vals = append(vals, v)
	}
	if !slices.Equal(vals, []int{1}) || len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("vals = %v, errs = %v", vals, errs)
	}
}

func TestWhere_Error(t *testing.T) {
	boom := errors.New("source failed")
	src := Map(FromSlice([]int{2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, boom
		}
		return n, nil
	})
	got, err := Collect(context.Background(), Where(src, func(n int) bool { return n%2 == 0 }))
	if !errors.Is(err, boom) || !slices.Equal(got, []int{2}) {
		t.Errorf("got %v, %v", got, err)
	}
}
