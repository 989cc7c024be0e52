package filter

import (
	"slices"
	"testing"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/packet"
)

func mustTok(t *testing.T, opts map[string]string) Filter {
	t.Helper()
	f, err := TokenizerKind().New(opts)
	if err != nil {
		t.Fatalf("tok %v: %v", opts, err)
	}
	return f
}

func mustConcat(t *testing.T, nr string) Filter {
	t.Helper()
	var opts map[string]string
	if nr != "" {
		opts = map[string]string{"nr": nr}
	}
	f, err := ConcatKind().New(opts)
	if err != nil {
		t.Fatalf("concat nr=%s: %v", nr, err)
	}
	return f
}

func process(t *testing.T, f Filter, inputs ...string) []string {
	t.Helper()
	out, err := Process(f, packet.FromStrings(inputs...))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	return packet.Strings(out)
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInput_PushAndNext(t *testing.T) {
	in := Input{Owner: "test"}

	if _, st := in.Next(); st != StatusNeedMoreInput {
		t.Fatalf("expected need_more_input on empty slot, got %s", st)
	}

	if err := in.Push(packet.FromString("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := in.Push(packet.FromString("b"))
	if !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE for full slot, got %v", err)
	}

	pkt, st := in.Next()
	if st != StatusOK || pkt.String() != "a" {
		t.Fatalf("expected a/ok, got %q/%s", pkt.String(), st)
	}
}

func TestInput_EndOfStream(t *testing.T) {
	in := Input{Owner: "test"}
	if err := in.Push(packet.FromString("a")); err != nil {
		t.Fatal(err)
	}
	if err := in.Push(nil); err != nil {
		t.Fatalf("end-of-stream push failed: %v", err)
	}
	if err := in.Push(nil); err != nil {
		t.Fatalf("repeated end-of-stream push failed: %v", err)
	}
	if !in.EOF() {
		t.Error("expected EOF")
	}

	// The buffered packet is delivered before end-of-stream.
	if pkt, st := in.Next(); st != StatusOK || pkt.String() != "a" {
		t.Fatalf("expected buffered packet, got %q/%s", pkt.String(), st)
	}
	if _, st := in.Next(); st != StatusEndOfStream {
		t.Fatalf("expected end_of_stream, got %s", st)
	}

	err := in.Push(packet.FromString("late"))
	if !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE after end of stream, got %v", err)
	}
}

func TestInput_EmptyPacketIsData(t *testing.T) {
	in := Input{Owner: "test"}
	if err := in.Push(packet.New(nil)); err != nil {
		t.Fatal(err)
	}
	if in.EOF() {
		t.Fatal("zero-length packet must not signal end of stream")
	}
	if pkt, st := in.Next(); st != StatusOK || pkt.Len() != 0 {
		t.Fatalf("expected empty packet, got %d/%s", pkt.Len(), st)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusOK:            "ok",
		StatusNeedMoreInput: "need_more_input",
		StatusEndOfStream:   "end_of_stream",
		StatusError:         "error",
		Status(42):          "unknown",
	}
	for st, want := range tests {
		if got := st.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(st), got, want)
		}
	}
}

func TestNull(t *testing.T) {
	f := NewNull()
	assertStrings(t, process(t, f, "a", "", "b"), []string{"a", "", "b"})

	if _, st, _ := f.Pull(); st != StatusEndOfStream {
		t.Errorf("expected end_of_stream after drain, got %s", st)
	}
}

func TestFeed_EmitError(t *testing.T) {
	f := NewNull()
	boom := errors.InvalidInput("sink", "full")
	st, err := Feed(f, packet.FromString("a"), func(*packet.Packet) error { return boom })
	if st != StatusError || err != boom {
		t.Fatalf("expected emit error to surface, got %s/%v", st, err)
	}
}

func TestProcess_DrainedFilter(t *testing.T) {
	tok := mustTok(t, map[string]string{"flush_nr": "0"})
	if err := tok.Push(nil); err != nil {
		t.Fatal(err)
	}
	if _, st, _ := tok.Pull(); st != StatusEndOfStream {
		t.Fatalf("expected end_of_stream, got %s", st)
	}

	out, err := Process(tok, packet.FromStrings("a", "b"))
	if !errors.HasCode(err, errors.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE pushing into a drained filter, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no output, got %q", packet.Strings(out))
	}
}
