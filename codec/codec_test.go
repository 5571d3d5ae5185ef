package codec

import (
	"reflect"
	"strings"
	"testing"
)

func sample() map[string]any {
	return map[string]any{
		"rps":   1.5,
		"hosts": []any{"a", "b"},
		"name":  "edge",
	}
}

func roundTrip(t *testing.T, c Codec[any], in any) any {
	t.Helper()
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestContainerCodecsYieldStringKeyedMaps(t *testing.T) {
	codecs := map[string]Codec[any]{
		"json":     JSON[any]{},
		"msgpack":  Msgpack[any]{},
		"cbor":     MustCBOR[any](true),
		"protobuf": Protobuf{},
	}
	for name, c := range codecs {
		got := roundTrip(t, c, sample())
		m, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("%s: decoded %T, want map[string]any", name, got)
		}
		if m["rps"] != 1.5 || m["name"] != "edge" {
			t.Fatalf("%s: scalars lost: %#v", name, m)
		}
		if !reflect.DeepEqual(m["hosts"], []any{"a", "b"}) {
			t.Fatalf("%s: list lost: %#v", name, m["hosts"])
		}
	}
}

func TestCBORNestedMapsAreStringKeyed(t *testing.T) {
	c := MustCBOR[any](false)
	got := roundTrip(t, c, map[string]any{"outer": map[string]any{"inner": "v"}})
	outer, ok := got.(map[string]any)["outer"].(map[string]any)
	if !ok || outer["inner"] != "v" {
		t.Fatalf("nested map decoded as %#v", got)
	}
}

func TestStringCodec(t *testing.T) {
	c := String{}
	for in, want := range map[any]string{42: "42", 2.5: "2.5", "[1,2]": "[1,2]", true: "true"} {
		if got := roundTrip(t, c, in); got != want {
			t.Fatalf("String(%v) = %#v want %q", in, got, want)
		}
	}
	if _, err := c.Encode(struct{}{}); err == nil {
		t.Fatalf("expected error for non-scalar")
	}
	if got := roundTrip(t, c, []byte("raw")); got != "raw" {
		t.Fatalf("bytes passthrough = %#v", got)
	}
}

func TestProtobufRejectsUnsupported(t *testing.T) {
	if _, err := (Protobuf{}).Encode(make(chan int)); err == nil {
		t.Fatalf("expected error for channel")
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[any]{Inner: JSON[any]{}, MaxDecode: 8}
	if _, err := c.Decode([]byte(`"short"`)); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	_, err := c.Decode([]byte(`"much too long"`))
	if err == nil || !strings.Contains(err.Error(), "payload too large") {
		t.Fatalf("want size error, got %v", err)
	}

	unlimited := LimitCodec[any]{Inner: JSON[any]{}}
	if _, err := unlimited.Decode([]byte(strings.Repeat(" ", 64) + "1")); err != nil {
		t.Fatalf("disabled limit: %v", err)
	}
}
