package descriptor

import (
	"sort"
	"strings"
)

// Format renders configs as a descriptor. Option keys are sorted and every
// separator, quote, backslash or whitespace byte is escaped, so Parse
// reproduces configs.
func Format(configs []FilterConfig) string {
	stages := make([]string, 0, len(configs))
	for _, cfg := range configs {
		var b strings.Builder
		b.WriteString(escape(cfg.Name))

		keys := make([]string, 0, len(cfg.Options))
		for k := range cfg.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteByte(nameSep)
			} else {
				b.WriteByte(optionSep)
			}
			b.WriteString(escape(k))
			b.WriteByte(valueSep)
			b.WriteString(escape(cfg.Options[k]))
		}
		stages = append(stages, b.String())
	}
	return strings.Join(stages, string(stageSep))
}

func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '\'', stageSep, optionSep, valueSep:
			b.WriteByte('\\')
		default:
			if isSpace(c) {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
