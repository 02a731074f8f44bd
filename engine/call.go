package engine

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/vk/cfgforge/registry"
)

// ArgsTagName is the struct tag consulted when decoding named arguments
// into args structs and prototypes.
const ArgsTagName = "cfg"

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// invoke calls a resolved target with fully-instantiated arguments.
// Binding failures, error returns, and target panics all surface as
// typed errors carrying the directive's tree path.
func invoke(ctx context.Context, name string, target any, pos []any, named map[string]any, path string, strict bool) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InstantiationError{Path: path, Target: name, Err: fmt.Errorf("target panicked: %v", r)}
		}
	}()

	if f, ok := target.(*registry.Factory); ok {
		return invokeFactory(ctx, name, f, pos, named, path, strict)
	}

	rv := reflect.ValueOf(target)
	switch rv.Kind() {
	case reflect.Func:
		return invokeFunc(ctx, name, rv, pos, named, path, strict)
	case reflect.Struct:
		return buildPrototype(name, rv.Type(), false, pos, named, path, strict)
	case reflect.Pointer:
		if rv.Type().Elem().Kind() == reflect.Struct {
			return buildPrototype(name, rv.Type().Elem(), true, pos, named, path, strict)
		}
	}
	return nil, &InstantiationError{Path: path, Target: name,
		Err: fmt.Errorf("target of type %T is not callable", target)}
}

// invokeFactory decodes named arguments into a fresh args struct and
// calls the factory function with it.
func invokeFactory(ctx context.Context, name string, f *registry.Factory, pos []any, named map[string]any, path string, strict bool) (any, error) {
	if f.NewArgs == nil || f.Fn == nil {
		return nil, &InstantiationError{Path: path, Target: name,
			Err: fmt.Errorf("factory is missing NewArgs or Fn")}
	}
	if len(pos) > 0 {
		return nil, &InstantiationError{Path: path, Target: name,
			Err: fmt.Errorf("factory targets take named arguments only, got %d positional", len(pos))}
	}

	args := f.NewArgs()
	if err := decodeNamed(named, args, strict, path, name); err != nil {
		return nil, err
	}

	fn := reflect.ValueOf(f.Fn)
	if fn.Kind() != reflect.Func {
		return nil, &InstantiationError{Path: path, Target: name,
			Err: fmt.Errorf("factory Fn of type %T is not a function", f.Fn)}
	}
	return invokeFunc(ctx, name, fn, []any{args}, nil, path, strict)
}

// invokeFunc binds positional and named arguments to a function's
// parameters and calls it. A leading context.Context parameter is
// supplied by the engine; named arguments decode into a trailing struct,
// struct-pointer, or map parameter.
func invokeFunc(ctx context.Context, name string, fn reflect.Value, pos []any, named map[string]any, path string, strict bool) (any, error) {
	ft := fn.Type()
	wrap := func(err error) error {
		return &InstantiationError{Path: path, Target: name, Err: err}
	}

	if ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errType) {
		return nil, wrap(fmt.Errorf("unsupported signature %s: want T, (T, error), or error", ft))
	}

	in := make([]reflect.Value, 0, ft.NumIn())
	first := 0
	if ft.NumIn() > 0 && ft.In(0) == ctxType {
		in = append(in, reflect.ValueOf(ctx))
		first = 1
	}

	// Reserve the last parameter for named arguments when an args slot
	// is needed and the parameter can hold one.
	last := ft.NumIn() - 1
	useNamed := false
	if len(named) > 0 {
		if ft.IsVariadic() || last < first || !namedCapable(ft.In(last)) {
			return nil, &UnexpectedArgumentError{Path: path, Target: name, Keys: sortedKeys(named)}
		}
		useNamed = true
	}

	fixed := ft.NumIn() - first
	if ft.IsVariadic() {
		fixed--
	}
	if useNamed {
		fixed--
	}

	if len(pos) < fixed || (!ft.IsVariadic() && len(pos) > fixed) {
		return nil, wrap(fmt.Errorf("target expects %d positional arguments, got %d", fixed, len(pos)))
	}

	for i := 0; i < fixed; i++ {
		v, err := assign(pos[i], ft.In(first+i))
		if err != nil {
			return nil, wrap(fmt.Errorf("argument %d: %w", i, err))
		}
		in = append(in, v)
	}
	if ft.IsVariadic() {
		elem := ft.In(ft.NumIn() - 1).Elem()
		for i := fixed; i < len(pos); i++ {
			v, err := assign(pos[i], elem)
			if err != nil {
				return nil, wrap(fmt.Errorf("argument %d: %w", i, err))
			}
			in = append(in, v)
		}
	}
	if useNamed {
		v, err := decodeNamedParam(named, ft.In(last), strict, path, name)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	outs := fn.Call(in)

	if n := len(outs); n > 0 && ft.Out(n-1) == errType {
		if !outs[n-1].IsNil() {
			return nil, wrap(outs[n-1].Interface().(error))
		}
		outs = outs[:n-1]
	}
	if len(outs) == 0 {
		return nil, nil
	}
	return outs[0].Interface(), nil
}

// buildPrototype constructs a fresh value of a registered struct type
// from the named arguments. The result has the same form as the
// registered prototype: value for a struct, pointer for a pointer.
func buildPrototype(name string, structT reflect.Type, wantPtr bool, pos []any, named map[string]any, path string, strict bool) (any, error) {
	if len(pos) > 0 {
		return nil, &InstantiationError{Path: path, Target: name,
			Err: fmt.Errorf("struct targets take named arguments only, got %d positional", len(pos))}
	}

	out := reflect.New(structT)
	if err := decodeNamed(named, out.Interface(), strict, path, name); err != nil {
		return nil, err
	}
	if wantPtr {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}

// namedCapable reports whether a parameter type can receive the named
// argument mapping.
func namedCapable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	case reflect.Map:
		return t.Key().Kind() == reflect.String
	default:
		return false
	}
}

// decodeNamedParam produces the reflect.Value for a function's named
// argument parameter.
func decodeNamedParam(named map[string]any, t reflect.Type, strict bool, path, name string) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Struct:
		out := reflect.New(t)
		if err := decodeNamed(named, out.Interface(), strict, path, name); err != nil {
			return reflect.Value{}, err
		}
		return out.Elem(), nil
	case reflect.Pointer:
		out := reflect.New(t.Elem())
		if err := decodeNamed(named, out.Interface(), strict, path, name); err != nil {
			return reflect.Value{}, err
		}
		return out, nil
	default: // string-keyed map
		out := reflect.New(t)
		if err := decodeNamed(named, out.Interface(), strict, path, name); err != nil {
			return reflect.Value{}, err
		}
		return out.Elem(), nil
	}
}

// decodeNamed decodes the named argument mapping into out (a pointer).
// Outside strict mode, arguments without a matching field are dropped by
// the decoding step itself; strict mode turns them into
// UnexpectedArgumentError.
func decodeNamed(named map[string]any, out any, strict bool, path, name string) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   out,
		TagName:  ArgsTagName,
		Metadata: &md,
	})
	if err != nil {
		return &InstantiationError{Path: path, Target: name, Err: err}
	}
	if err := dec.Decode(named); err != nil {
		return &InstantiationError{Path: path, Target: name, Err: err}
	}
	if strict && len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return &UnexpectedArgumentError{Path: path, Target: name, Keys: md.Unused}
	}
	return nil
}

// assign converts one positional argument value to a parameter type.
// Numeric kinds convert when lossless; mappings decode into structs;
// sequences convert element-wise.
func assign(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use null as %s", t)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	if isNumeric(rv.Kind()) && isNumeric(t.Kind()) {
		return convertNumeric(rv, t)
	}

	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		if m, ok := v.(map[string]any); ok {
			out := reflect.New(t)
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:  out.Interface(),
				TagName: ArgsTagName,
			})
			if err == nil {
				err = dec.Decode(m)
			}
			if err != nil {
				return reflect.Value{}, err
			}
			return out.Elem(), nil
		}
	case reflect.Slice:
		if seq, ok := v.([]any); ok {
			out := reflect.MakeSlice(t, len(seq), len(seq))
			for i, elem := range seq {
				ev, err := assign(elem, t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convertNumeric converts between numeric kinds, rejecting lossy
// float-to-integer conversions.
func convertNumeric(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	srcFloat := rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
	dstFloat := t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	if srcFloat && !dstFloat {
		f := rv.Float()
		if f != math.Trunc(f) {
			return reflect.Value{}, fmt.Errorf("cannot use %v as %s without losing precision", f, t)
		}
	}
	return rv.Convert(t), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
