package codec

import "github.com/spf13/cast"

// String keeps the payload as text and leaves interpretation to coercion
// (numeric text, JSON arrays, JSON objects). Encode accepts any scalar.
type String struct{}

var _ Codec[any] = String{}

func (String) Encode(v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (String) Decode(b []byte) (any, error) { return string(b), nil }
