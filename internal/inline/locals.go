package inline

import (
	"fmt"
	"reflect"
)

// Locals are the variables bound into a template, by name.
type Locals map[string]any

// Binding is a snapshot of named values taken at the call site.  Go cannot
// enumerate a function's local variables, so Bind reads them from a struct
// literal built in the call instead:
//
//	local := "H"
//	return u.ERB(inline.Bind(struct {
//		Local string `inline:"local"`
//	}{local}))
type Binding struct {
	vars Locals
	err  error
}

// Bind snapshots the exported fields of v, a struct or pointer to struct.
// A field's name comes from its `inline` tag when present; the tag "-"
// skips the field.  Values are copied at the time of the call.
func Bind(v any) Binding {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Binding{err: fmt.Errorf("%w: nil binding", ErrInvalidLocals)}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Binding{err: fmt.Errorf("%w: cannot bind %T", ErrInvalidLocals, v)}
	}

	rt := rv.Type()
	vars := make(Locals, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("inline"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		vars[name] = rv.Field(i).Interface()
	}
	return Binding{vars: vars}
}

// Locals returns the captured values.
func (b Binding) Locals() (Locals, error) { return b.vars, b.err }

// resolveLocals turns the locals argument of a render call into Locals.
func resolveLocals(in any) (Locals, error) {
	switch v := in.(type) {
	case nil:
		return Locals{}, nil
	case Locals:
		return v, nil
	case map[string]any:
		return Locals(v), nil
	case Binding:
		return v.Locals()
	case *Binding:
		if v == nil {
			return Locals{}, nil
		}
		return v.Locals()
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidLocals, in)
	}
}
