package mongosettings

import (
	"context"
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Kind is the declared type of a remote field.
type Kind uint8

const (
	KindNumber  Kind = iota + 1 // float64
	KindList                    // []any
	KindSet                     // mapset.Set[any]
	KindMapping                 // map[string]any
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) valid() bool { return k >= KindNumber && k <= KindMapping }

// Field describes a remote-backed field: its declared kind and an optional default.
// The zero Field is invalid; build one with Declare.
type Field struct {
	kind   Kind
	def    any
	hasDef bool
}

// Declare builds a descriptor. A nil def means "no default". A non-nil default
// must itself be coercible to kind; the coerced form is stored.
func Declare(kind Kind, def any) (Field, error) {
	if !kind.valid() {
		return Field{}, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	f := Field{kind: kind}
	if def == nil {
		return f, nil
	}
	v, err := Coerce(kind, def)
	if err != nil {
		return Field{}, fmt.Errorf("default: %w", err)
	}
	f.def, f.hasDef = v, true
	return f, nil
}

// MustDeclare is like Declare but panics on error. Intended for package-level declarations.
func MustDeclare(kind Kind, def any) Field {
	f, err := Declare(kind, def)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Field) Kind() Kind { return f.kind }

// Default returns the declared default and whether one was declared.
func (f Field) Default() (any, bool) { return f.def, f.hasDef }

// Remote is a settings field whose value lives in the remote store.
// Declare it with Number, List, Set or Mapping and bind it with Init. A zero
// Remote[T] works too when T is float64, []any, mapset.Set[any] or
// map[string]any; any other T is rejected by Init with ErrInvalidKind.
type Remote[T any] struct {
	field Field
	name  string
	base  *Base
}

func newRemote[T any](kind Kind) Remote[T] {
	return Remote[T]{field: Field{kind: kind}}
}

func Number() Remote[float64]         { return newRemote[float64](KindNumber) }
func List() Remote[[]any]             { return newRemote[[]any](KindList) }
func Set() Remote[mapset.Set[any]]    { return newRemote[mapset.Set[any]](KindSet) }
func Mapping() Remote[map[string]any] { return newRemote[map[string]any](KindMapping) }

// FromField builds a Remote from a descriptor made by Declare. T must be the
// Go type of f's kind (float64, []any, mapset.Set[any], map[string]any).
func FromField[T any](f Field) (Remote[T], error) {
	if !f.kind.valid() {
		return Remote[T]{}, fmt.Errorf("%w: %v", ErrInvalidKind, f.kind)
	}
	if k := kindOf[T](); k != f.kind {
		t := reflect.TypeOf((*T)(nil)).Elem()
		return Remote[T]{}, fmt.Errorf("%w: %s field cannot hold %s", ErrInvalidKind, f.kind, t)
	}
	return Remote[T]{field: f}, nil
}

// WithDefault returns a copy of r whose default is def. def already has the
// kind's Go type, so unlike Declare it needs no coercion.
func (r Remote[T]) WithDefault(def T) Remote[T] {
	r.field.def, r.field.hasDef = def, true
	return r
}

func (r *Remote[T]) Name() string { return r.name }
func (r *Remote[T]) Kind() Kind   { return r.field.kind }
func (r *Remote[T]) Field() Field { return r.field }

func (r *Remote[T]) Default() (T, bool) {
	if !r.field.hasDef {
		var zero T
		return zero, false
	}
	v, _ := r.field.def.(T)
	return v, true
}

// Get resolves the field. Without a record and without a default it returns
// the zero value of T and a nil error; use Lookup to tell those apart.
func (r *Remote[T]) Get(ctx context.Context) (T, error) {
	v, _, err := r.Lookup(ctx)
	return v, err
}

// Lookup resolves the field. ok is false only when the store has no record
// and no default was declared.
func (r *Remote[T]) Lookup(ctx context.Context) (T, bool, error) {
	var zero T
	if r.base == nil || r.base.r == nil {
		return zero, false, fmt.Errorf("%w: %q", ErrNotBound, r.name)
	}
	v, ok, err := r.base.r.resolve(ctx, r.name, r.field)
	if err != nil || !ok {
		return zero, false, err
	}
	t, _ := v.(T) // nil only for a nil default
	return t, true, nil
}

func (r *Remote[T]) bind(name string, b *Base) Field {
	if r.field.kind == 0 {
		r.field.kind = kindOf[T]()
	}
	r.name = name
	r.base = b
	return r.field
}

// kindOf maps a Remote's value type to its Kind; 0 for unsupported types.
func kindOf[T any]() Kind {
	switch reflect.TypeOf((*T)(nil)).Elem() {
	case reflect.TypeOf(float64(0)):
		return KindNumber
	case reflect.TypeOf([]any(nil)):
		return KindList
	case reflect.TypeOf((*mapset.Set[any])(nil)).Elem():
		return KindSet
	case reflect.TypeOf(map[string]any(nil)):
		return KindMapping
	default:
		return 0
	}
}

// binder is implemented by *Remote[T]; Init uses it to find remote fields.
type binder interface {
	bind(name string, b *Base) Field
}
