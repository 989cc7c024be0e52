package filter

import (
	"bytes"
	"strconv"

	"github.com/kbukum/pktchain/packet"
)

// TokenizerName is the registry name of the tokenizer filter.
const TokenizerName = "tok"

// TokenizerConfig holds the tok options.
type TokenizerConfig struct {
	// Delim is the set of separator bytes. Any byte of Delim ends a token.
	Delim string `option:"delim" validate:"required"`
	// FlushStr is the literal emitted after end-of-stream.
	FlushStr string `option:"flush_str"`
	// FlushNr is how many times FlushStr is emitted.
	FlushNr int `option:"flush_nr" validate:"min=0,max=16"`
}

// DefaultTokenizerConfig returns the tok defaults.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		Delim:    ",",
		FlushStr: "[flush]",
		FlushNr:  1,
	}
}

// TokenizerState is the tokenizer's position in its state machine.
type TokenizerState int

const (
	TokenizerIdle TokenizerState = iota
	TokenizerDraining
	TokenizerFlushing
	TokenizerDone
)

func (s TokenizerState) String() string {
	switch s {
	case TokenizerIdle:
		return "idle"
	case TokenizerDraining:
		return "draining"
	case TokenizerFlushing:
		return "flushing"
	case TokenizerDone:
		return "done"
	default:
		return "unknown"
	}
}

// Tokenizer splits every input packet into one packet per token. Runs of
// delimiters produce no empty tokens; a packet holding only delimiters is
// dropped.
type Tokenizer struct {
	cfg   TokenizerConfig
	delim [256]bool
	in    Input
	state TokenizerState

	// buf[pos:] holds unread input; pending is set iff a token remains in it.
	buf     []byte
	pos     int
	pending bool

	flushLeft int
}

// NewTokenizer creates a tokenizer from cfg.
func NewTokenizer(cfg TokenizerConfig) (*Tokenizer, error) {
	if err := checkOptions(TokenizerName, &cfg); err != nil {
		return nil, err
	}
	return newTokenizer(cfg), nil
}

func newTokenizer(cfg TokenizerConfig) *Tokenizer {
	t := &Tokenizer{
		cfg:       cfg,
		in:        Input{Owner: TokenizerName},
		flushLeft: cfg.FlushNr,
	}
	for i := 0; i < len(cfg.Delim); i++ {
		t.delim[cfg.Delim[i]] = true
	}
	return t
}

func (t *Tokenizer) Name() string { return TokenizerName }

// State returns the current state.
func (t *Tokenizer) State() TokenizerState { return t.state }

func (t *Tokenizer) Push(pkt *packet.Packet) error { return t.in.Push(pkt) }

func (t *Tokenizer) Pull() (*packet.Packet, Status, error) {
	for {
		if t.pending {
			return t.nextToken(), StatusOK, nil
		}
		if t.state == TokenizerDone {
			return nil, StatusEndOfStream, nil
		}

		pkt, st := t.in.Next()
		switch st {
		case StatusNeedMoreInput:
			t.state = TokenizerIdle
			return nil, StatusNeedMoreInput, nil
		case StatusEndOfStream:
			if t.flushLeft > 0 {
				t.flushLeft--
				t.state = TokenizerFlushing
				return packet.FromString(t.cfg.FlushStr), StatusOK, nil
			}
			t.state = TokenizerDone
			return nil, StatusEndOfStream, nil
		}

		t.load(pkt.Bytes())
	}
}

func (t *Tokenizer) load(data []byte) {
	t.buf = data
	t.pos = 0
	t.skipDelims()
	t.pending = t.pos < len(t.buf)
	if t.pending {
		t.state = TokenizerDraining
	} else {
		t.buf = nil
	}
}

// nextToken cuts the token at pos. It must only be called while pending.
func (t *Tokenizer) nextToken() *packet.Packet {
	start := t.pos
	for t.pos < len(t.buf) && !t.delim[t.buf[t.pos]] {
		t.pos++
	}
	tok := bytes.Clone(t.buf[start:t.pos])

	t.skipDelims()
	if t.pos >= len(t.buf) {
		t.buf = nil
		t.pos = 0
		t.pending = false
		t.state = TokenizerIdle
	}
	return packet.New(tok)
}

func (t *Tokenizer) skipDelims() {
	for t.pos < len(t.buf) && t.delim[t.buf[t.pos]] {
		t.pos++
	}
}

// TokenizerKind describes the tokenizer for a Registry.
func TokenizerKind() Kind {
	def := DefaultTokenizerConfig()
	return Kind{
		Name:        TokenizerName,
		Description: "Split packets into tokens, then emit a flush literal at end of stream",
		Options: []OptionDoc{
			{Name: "delim", Type: "string", Default: def.Delim, Help: "separator byte set"},
			{Name: "flush_str", Type: "string", Default: def.FlushStr, Help: "literal emitted after end of stream"},
			{Name: "flush_nr", Type: "int", Default: strconv.Itoa(def.FlushNr), Range: "0..16", Help: "number of flush literals"},
		},
		New: func(opts map[string]string) (Filter, error) {
			cfg := DefaultTokenizerConfig()
			if err := BindOptions(TokenizerName, opts, &cfg); err != nil {
				return nil, err
			}
			return newTokenizer(cfg), nil
		},
	}
}
