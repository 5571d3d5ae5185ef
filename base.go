package mongosettings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Base is embedded by settings types. It owns the instance's store connection
// and resolution cache, and serves reads by field name.
//
// Plain fields (every exported field that is not a Remote) are read as
// assigned and never touch the store. Remote fields resolve through the cache.
type Base struct {
	r         *resolver
	attrs     map[string]attr
	closeOnce sync.Once
	closeErr  error
}

// attr is one settings field: remote when remote != nil, plain otherwise.
type attr struct {
	remote *Field
	plain  reflect.Value
}

func (b *Base) settingsBase() *Base { return b }

// Get reads a field by name. See Lookup.
func (b *Base) Get(ctx context.Context, name string) (any, error) {
	v, _, err := b.Lookup(ctx, name)
	return v, err
}

// Lookup reads a field by name. Plain fields return their current value.
// Remote fields resolve as Remote.Lookup does; ok is false only when there is
// no record and no default.
func (b *Base) Lookup(ctx context.Context, name string) (any, bool, error) {
	if b.r == nil {
		return nil, false, fmt.Errorf("%w: %q", ErrNotBound, name)
	}
	a, ok := b.attrs[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if a.remote == nil {
		return a.plain.Interface(), true, nil
	}
	return b.r.resolve(ctx, name, *a.remote)
}

// IsRemote reports whether name is a bound Remote field.
func (b *Base) IsRemote(name string) bool {
	a, ok := b.attrs[name]
	return ok && a.remote != nil
}

// Names lists every bound field name, sorted.
func (b *Base) Names() []string {
	out := make([]string, 0, len(b.attrs))
	for n := range b.attrs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Close releases the cache and the store connection.
func (b *Base) Close(ctx context.Context) error {
	if b.r == nil {
		return nil
	}
	b.closeOnce.Do(func() {
		b.closeErr = errors.Join(b.r.cache.Close(ctx), b.r.store.Close(ctx))
	})
	return b.closeErr
}

var (
	baseType    = reflect.TypeOf(Base{})
	basePtrType = reflect.PointerTo(baseType)
	binderType  = reflect.TypeOf((*binder)(nil)).Elem()
)

// bindFields walks the exported fields of the struct s points to, including
// fields promoted from embedded structs. Remote fields are bound to b under
// their `mongo` tag (or Go field name); the tag "-" skips a field.
func bindFields(s any, b *Base) (map[string]attr, error) {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("mongosettings: %T is not a pointer to a struct", s)
	}
	attrs := make(map[string]attr)
	if err := bindStruct(rv.Elem(), b, attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

func bindStruct(rv reflect.Value, b *Base, attrs map[string]attr) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Anonymous {
			if sf.Type == baseType || sf.Type == basePtrType {
				continue
			}
			if embedded, ok := embeddedStruct(sf); ok {
				if err := bindEmbedded(rv.Field(i), sf, embedded, b, attrs); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("mongo"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := attrs[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}

		fv := rv.Field(i)
		bd, ok := fv.Addr().Interface().(binder)
		if !ok {
			attrs[name] = attr{plain: fv}
			continue
		}
		f := bd.bind(name, b)
		if !f.kind.valid() {
			return fmt.Errorf("%w: field %s has type %s", ErrInvalidKind, sf.Name, sf.Type)
		}
		attrs[name] = attr{remote: &f}
	}
	return nil
}

// embeddedStruct returns the struct type of an embedded struct or struct pointer.
func embeddedStruct(sf reflect.StructField) (reflect.Type, bool) {
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// bindEmbedded promotes the fields of an embedded struct. Remote fields that
// cannot be reached (unexported embedding, nil pointer) fail Init instead of
// staying silently unbound.
func bindEmbedded(fv reflect.Value, sf reflect.StructField, t reflect.Type, b *Base, attrs map[string]attr) error {
	if sf.Tag.Get("mongo") == "-" {
		return nil
	}
	if !sf.IsExported() || (fv.Kind() == reflect.Pointer && fv.IsNil()) {
		if hasRemote(t, map[reflect.Type]bool{}) {
			return fmt.Errorf("mongosettings: embedded %s holds remote fields but is unexported or nil", sf.Type)
		}
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		fv = fv.Elem()
	}
	return bindStruct(fv, b, attrs)
}

func hasRemote(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if reflect.PointerTo(sf.Type).Implements(binderType) {
			return true
		}
		if sf.Anonymous {
			if et, ok := embeddedStruct(sf); ok && hasRemote(et, seen) {
				return true
			}
		}
	}
	return false
}
