package codec

import "encoding/json"

// JSON is the default payload codec of store/redis. Numbers decode as
// float64, arrays as []any and objects as map[string]any, which are already
// the number, list and mapping shapes; a JSON array stored for a set field is
// turned into a set by coercion.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
