package descriptor

import (
	"fmt"
	"strings"

	"github.com/kbukum/pktchain/errors"
)

const (
	stageSep  = ','
	nameSep   = '='
	optionSep = ':'
	valueSep  = '='
)

// FilterConfig names one stage and its raw options.
type FilterConfig struct {
	Name    string            `json:"name" yaml:"name"`
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Parse splits a descriptor into stage configs. Empty stages are skipped,
// so an empty descriptor yields no configs.
func Parse(desc string) ([]FilterConfig, error) {
	var configs []FilterConfig
	for i, stage := range split(desc, stageSep, -1) {
		if stage == "" {
			continue
		}
		cfg, err := parseStage(stage)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				appErr.WithDetail("stage", i)
			}
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// parseStage splits a stage into its name and options. Leading '=' bytes
// before the name are skipped.
func parseStage(stage string) (FilterConfig, error) {
	trimmed := strings.TrimLeft(strings.TrimLeft(stage, " \t\n\r"), string(nameSep))
	parts := split(trimmed, nameSep, 2)
	cfg := FilterConfig{Name: unquote(parts[0])}
	if cfg.Name == "" {
		return cfg, errors.InvalidConfig(fmt.Sprintf("stage %q has no filter name", stage))
	}
	if len(parts) == 1 || parts[1] == "" {
		return cfg, nil
	}

	cfg.Options = make(map[string]string)
	for _, opt := range split(parts[1], optionSep, -1) {
		kv := split(opt, valueSep, 2)
		if len(kv) != 2 {
			return cfg, errors.InvalidOption(cfg.Name, unquote(opt), fmt.Sprintf("missing '=' after key %q", opt))
		}
		key := unquote(kv[0])
		if key == "" {
			return cfg, errors.InvalidOption(cfg.Name, "", fmt.Sprintf("empty key in %q", opt))
		}
		cfg.Options[key] = unquote(kv[1])
	}
	return cfg, nil
}

// split cuts s at unescaped, unquoted occurrences of sep, into at most n
// pieces (all of them when n < 0). Pieces keep their escapes and quotes.
func split(s string, sep byte, n int) []string {
	var (
		parts  []string
		start  int
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		if n > 0 && len(parts) == n-1 {
			break
		}
		switch c := s[i]; {
		case c == '\\' && !quoted:
			i++
		case c == '\'':
			quoted = !quoted
		case c == sep && !quoted:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// unquote resolves escapes and quotes and trims unquoted leading and
// trailing whitespace.
func unquote(s string) string {
	var b strings.Builder
	keep := 0 // length of b up to the last byte that must not be trimmed
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				keep = b.Len()
			}
		case c == '\'':
			for i++; i < len(s) && s[i] != '\''; i++ {
				b.WriteByte(s[i])
			}
			keep = b.Len()
		default:
			b.WriteByte(c)
			if !isSpace(c) {
				keep = b.Len()
			}
		}
	}
	return b.String()[:keep]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
