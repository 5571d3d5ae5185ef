package mongosettings

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cast"
)

// float64 represents every integer in [-2^53, 2^53] exactly.
const maxExactInt = 1 << 53

// Coerce converts a raw stored value into the Go value of kind:
// float64, []any, mapset.Set[any] or map[string]any.
//
// Values that already have the target shape are returned as-is. Strings are
// coerced naturally: numeric text for numbers, JSON arrays for lists and sets,
// JSON objects for mappings. Anything else, including lossy integer
// conversions and booleans, yields a *MismatchError.
func Coerce(kind Kind, raw any) (any, error) {
	var (
		v  any
		ok bool
	)
	switch kind {
	case KindNumber:
		v, ok = toNumber(raw)
	case KindList:
		v, ok = toList(raw)
	case KindSet:
		v, ok = toSet(raw)
	case KindMapping:
		v, ok = toMapping(raw)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	if !ok {
		return nil, &MismatchError{Kind: kind, Value: raw}
	}
	return v, nil
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return v, true
	case int:
		return exactInt(int64(v))
	case int64:
		return exactInt(v)
	case uint:
		return exactUint(uint64(v))
	case uint64:
		return exactUint(v)
	case json.Number:
		return numberText(string(v))
	case string:
		return numberText(v)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numberText parses numeric text. Integer literals go through exactInt so that
// text beyond 2^53 is rejected rather than rounded by ParseFloat.
func numberText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if isIntLiteral(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return exactInt(n)
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isIntLiteral(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func exactInt(v int64) (float64, bool) {
	if v > maxExactInt || v < -maxExactInt {
		return 0, false
	}
	return float64(v), true
}

func exactUint(v uint64) (float64, bool) {
	if v > maxExactInt {
		return 0, false
	}
	return float64(v), true
}

func toList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case mapset.Set[any]:
		return v.ToSlice(), true
	case string:
		var out []any
		if !decodeJSONText(v, '[', &out) {
			return nil, false
		}
		return out, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toSet(raw any) (mapset.Set[any], bool) {
	if s, ok := raw.(mapset.Set[any]); ok {
		return s, true
	}
	items, ok := toList(raw)
	if !ok {
		return nil, false
	}
	for _, it := range items {
		if it != nil && !reflect.TypeOf(it).Comparable() {
			return nil, false // lists and mappings cannot be set members
		}
	}
	return mapset.NewSet[any](items...), true
}

func toMapping(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case string:
		var out map[string]any
		if !decodeJSONText(v, '{', &out) {
			return nil, false
		}
		return out, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		out[k.String()] = iter.Value().Interface()
	}
	return out, true
}

// decodeJSONText decodes s into dst when s is JSON text opening with open.
func decodeJSONText(s string, open byte, dst any) bool {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != open {
		return false
	}
	return json.Unmarshal([]byte(s), dst) == nil
}
