package filter

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/validation"
)

// BindOptions decodes string options into target, a pointer to a struct
// whose fields carry `option` and `validate` tags. Fields not named in opts
// keep their current values.
//
// Unknown keys and values that do not parse fail with INVALID_OPTION,
// bound violations with OUT_OF_RANGE and other rule failures with
// INVALID_CONFIG.
func BindOptions(filter string, opts map[string]string, target any) error {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var md mapstructure.Metadata
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "option",
			DecodeHook:       mapstructure.DecodeHookFuncType(decimalHook),
			WeaklyTypedInput: true,
			MatchName:        func(name, field string) bool { return name == field },
			Metadata:         &md,
			Result:           target,
		})
		if err != nil {
			return errors.Internal(err)
		}
		if err := dec.Decode(map[string]any{key: opts[key]}); err != nil {
			return errors.InvalidOption(filter, key, fmt.Sprintf("cannot parse %q for option %s", opts[key], key)).WithCause(err)
		}
		if len(md.Unused) > 0 {
			return errors.InvalidOption(filter, key, fmt.Sprintf("unknown option %q", key))
		}
	}

	return checkOptions(filter, target)
}

// decimalHook parses string values bound to integer fields as base 10.
// An empty string is not a number.
func decimalHook(_, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(s, 10, to.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(s, 10, to.Bits())
	}
	return data, nil
}

// checkOptions runs the struct tag rules of target.
func checkOptions(filter string, target any) error {
	errs := validation.Struct(target)
	if len(errs) == 0 {
		return nil
	}

	first := errs[0]
	if validation.IsRangeTag(first.Tag) {
		return errors.OutOfRange(filter, first.Field, first.Tag+"="+first.Param).WithCause(errs)
	}
	return errors.InvalidConfig(fmt.Sprintf("%s: option %s %s", filter, first.Field, first.Message)).
		WithCause(errs).
		WithDetail("filter", filter).
		WithDetail("option", first.Field)
}
