package core

import (
	"fmt"
	"reflect"
	"slices"
)

// Invoke calls the method called name on the subject and returns its results.
//
// Bindings registered for the subject's type take precedence over its exported methods, which is how
// unexported methods are reached. Panics raised by the method are not recovered.
func (a *Accessor) Invoke(name string, args ...any) ([]any, error) {
	fn, receiver, found := a.method(name)
	if !found {
		return nil, a.notFound(a.root.Type(), name, "no bound or exported method", a.Members)
	}

	return a.opts.call(fn, receiver, name, args)
}

// InvokeAs calls the method called name and returns its first result as R.
func InvokeAs[R any](acc *Accessor, name string, args ...any) (R, error) {
	results, err := acc.Invoke(name, args...)
	if err != nil {
		var zero R

		return zero, err
	}

	if len(results) == 0 {
		var zero R

		return zero, fmt.Errorf("%w: %s returned no values", ErrTypeMismatch, name)
	}

	return as[R](results[0], "first result of "+name)
}

// GetAs returns the member at path as R.
func GetAs[R any](acc *Accessor, path string) (R, error) {
	value, err := acc.Get(path)
	if err != nil {
		var zero R

		return zero, err
	}

	return as[R](value, "member "+path)
}

// InvokeStatic calls the static binding called name registered for typ.
func InvokeStatic(typ reflect.Type, name string, args []any, opts ...Option) ([]any, error) {
	resolved := newOptions(opts)

	fn, found := lookupBinding(staticBindings, typ, name)
	if !found {
		memberErr := &MemberError{Type: typ, Member: name, Reason: "no static binding"}
		if resolved.suggest {
			memberErr.Suggestions = suggest(name, boundNames(staticBindings, typ))
		}

		return nil, memberErr
	}

	return resolved.call(fn, reflect.Value{}, name, args)
}

// method finds what name refers to: a binding for the pointer type, a binding for the element type,
// or an exported method. receiver is invalid when fn is already bound to the subject.
func (a *Accessor) method(name string) (fn, receiver reflect.Value, found bool) {
	if bound, ok := lookupBinding(instanceBindings, a.root.Type(), name); ok {
		return bound, a.root, true
	}

	if a.root.Kind() == reflect.Pointer {
		if bound, ok := lookupBinding(instanceBindings, a.root.Type().Elem(), name); ok {
			return bound, a.root.Elem(), true
		}
	}

	if method := a.root.MethodByName(name); method.IsValid() {
		return method, reflect.Value{}, true
	}

	return reflect.Value{}, reflect.Value{}, false
}

// call checks args against fn's parameters, converting where allowed, and calls it.
// A valid receiver is passed as the first argument.
func (o options) call(fn, receiver reflect.Value, name string, args []any) ([]any, error) {
	fnType := fn.Type()

	in := make([]reflect.Value, 0, len(args)+1)
	if receiver.IsValid() {
		in = append(in, receiver)
	}

	offset := len(in)
	params := fnType.NumIn() - offset

	switch {
	case fnType.IsVariadic() && len(args) < params-1:
		return nil, fmt.Errorf("%w: %s takes at least %d arguments, got %d", ErrTypeMismatch, name, params-1, len(args))
	case !fnType.IsVariadic() && len(args) != params:
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrTypeMismatch, name, params, len(args))
	}

	for i, arg := range args {
		param := offset + i

		var want reflect.Type
		if fnType.IsVariadic() && param >= fnType.NumIn()-1 {
			want = fnType.In(fnType.NumIn() - 1).Elem()
		} else {
			want = fnType.In(param)
		}

		value, err := o.coerce(arg, want, fmt.Sprintf("argument %d of %s", i, name))
		if err != nil {
			return nil, err
		}

		in = append(in, value)
	}

	out := fn.Call(in)

	results := make([]any, len(out))
	for i, value := range out {
		results[i] = value.Interface()
	}

	return results, nil
}

// coerce turns value into a reflect.Value of type want.
func (o options) coerce(value any, want reflect.Type, what string) (reflect.Value, error) {
	if value == nil {
		if isNilable(want.Kind()) {
			return reflect.Zero(want), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: %s: cannot use nil as %v", ErrTypeMismatch, what, want)
	}

	given := reflect.ValueOf(value)

	if given.Type().AssignableTo(want) {
		return given, nil
	}

	if o.convert && convertible(given.Type(), want) {
		return given.Convert(want), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s: cannot use %v as %v", ErrTypeMismatch, what, given.Type(), want)
}

func as[R any](value any, what string) (R, error) {
	if typed, ok := value.(R); ok {
		return typed, nil
	}

	var zero R

	if value == nil && isNilable(reflect.TypeFor[R]().Kind()) {
		return zero, nil
	}

	return zero, fmt.Errorf("%w: %s is %T, not %v", ErrTypeMismatch, what, value, reflect.TypeFor[R]())
}

// convertible excludes conversions that compile but rarely mean what a test intends:
// integers to strings, and slices to arrays (which panic on length mismatch).
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	if to.Kind() == reflect.String && slices.Contains(integerKinds, from.Kind()) {
		return false
	}

	if from.Kind() == reflect.Slice {
		if to.Kind() == reflect.Array || (to.Kind() == reflect.Pointer && to.Elem().Kind() == reflect.Array) {
			return false
		}
	}

	return true
}

func isNilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // read-only kind table
	integerKinds = []reflect.Kind{
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
	}
)
