package mongosettings

import (
	"context"
	"errors"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
)

func TestKindString(t *testing.T) {
	want := map[Kind]string{
		KindNumber:  "number",
		KindList:    "list",
		KindSet:     "set",
		KindMapping: "mapping",
		Kind(0):     "Kind(0)",
	}
	for k, s := range want {
		if k.String() != s {
			t.Fatalf("Kind(%d).String() = %q, want %q", uint8(k), k.String(), s)
		}
	}
}

func TestDeclare(t *testing.T) {
	f, err := Declare(KindNumber, "10")
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if f.Kind() != KindNumber {
		t.Fatalf("kind = %v", f.Kind())
	}
	if def, ok := f.Default(); !ok || def != 10.0 {
		t.Fatalf("default should be coerced to 10.0, got %v ok=%v", def, ok)
	}

	f, err = Declare(KindList, nil)
	if err != nil {
		t.Fatalf("Declare without default: %v", err)
	}
	if _, ok := f.Default(); ok {
		t.Fatalf("nil default must mean no default")
	}
}

func TestDeclareRejects(t *testing.T) {
	if _, err := Declare(Kind(42), nil); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind, got %v", err)
	}
	if _, err := Declare(KindMapping, 3); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch for bad default, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustDeclare should panic on invalid kind")
		}
	}()
	MustDeclare(Kind(0), nil)
}

func TestRemoteDeclarations(t *testing.T) {
	n := Number().WithDefault(2.5)
	if n.Kind() != KindNumber {
		t.Fatalf("Number kind = %v", n.Kind())
	}
	if def, ok := n.Default(); !ok || def != 2.5 {
		t.Fatalf("Number default = %v ok=%v", def, ok)
	}

	base := List()
	withDef := base.WithDefault([]any{"a"})
	if _, ok := base.Default(); ok {
		t.Fatalf("WithDefault must not modify the receiver")
	}
	if def, ok := withDef.Default(); !ok || len(def) != 1 {
		t.Fatalf("List default = %v ok=%v", def, ok)
	}

	s := Set().WithDefault(nil)
	if def, ok := s.Default(); !ok || def != nil {
		t.Fatalf("nil set default should be declared and nil, got %v ok=%v", def, ok)
	}

	if m := Mapping(); m.Kind() != KindMapping {
		t.Fatalf("Mapping kind = %v", m.Kind())
	}
}

func TestKindOf(t *testing.T) {
	if kindOf[float64]() != KindNumber ||
		kindOf[[]any]() != KindList ||
		kindOf[mapset.Set[any]]() != KindSet ||
		kindOf[map[string]any]() != KindMapping {
		t.Fatalf("kindOf mapping broken")
	}
	if kindOf[string]() != 0 || kindOf[[]string]() != 0 || kindOf[int]() != 0 {
		t.Fatalf("unsupported types must map to 0")
	}
}

func TestUnboundRemote(t *testing.T) {
	r := Number()
	if _, err := r.Get(context.Background()); !errors.Is(err, ErrNotBound) {
		t.Fatalf("want ErrNotBound, got %v", err)
	}
}

func TestFromField(t *testing.T) {
	f := MustDeclare(KindList, `["a","b"]`)
	r, err := FromField[[]any](f)
	if err != nil {
		t.Fatalf("FromField: %v", err)
	}
	if r.Kind() != KindList {
		t.Fatalf("kind = %v", r.Kind())
	}
	if def, ok := r.Default(); !ok || len(def) != 2 || def[0] != "a" {
		t.Fatalf("coerced default lost: %v ok=%v", def, ok)
	}

	if _, err := FromField[float64](f); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind for kind/type mismatch, got %v", err)
	}
	if _, err := FromField[float64](Field{}); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind for zero Field, got %v", err)
	}
}
