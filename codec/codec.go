// Package codec turns stored payload bytes into raw values and back.
// Stores that keep opaque bytes (Redis) use a Codec[any] to recover the raw
// value handed to coercion; decoded containers should be []any and
// map[string]any.
package codec

// Codec encodes/decodes values V to []byte. Settings writers use Encode to
// seed Redis keys; store/redis only ever calls Decode.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
