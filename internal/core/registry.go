package core

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Bind registers fn as the instance member called name for receivers of type recv.
// fn's first parameter must accept recv; a method expression such as (*T).name fits.
// Registering a name again replaces the previous binding.
func Bind(recv reflect.Type, name string, fn any) error {
	value := reflect.ValueOf(fn)

	if err := checkBinding(recv, name, value); err != nil {
		return err
	}

	if value.Type().NumIn() == 0 || !recv.AssignableTo(value.Type().In(0)) {
		return fmt.Errorf("%w: %s: first parameter of %v does not accept %v", ErrInvalidBinding, name, value.Type(), recv)
	}

	register(instanceBindings, recv, name, value)

	return nil
}

// BindStatic registers fn as the static member called name of type typ.
// Registering a name again replaces the previous binding.
func BindStatic(typ reflect.Type, name string, fn any) error {
	value := reflect.ValueOf(fn)

	if err := checkBinding(typ, name, value); err != nil {
		return err
	}

	register(staticBindings, typ, name, value)

	return nil
}

// BindScoped registers an instance binding like Bind, and restores whatever was bound under the
// same name when t's test completes.
func BindScoped(t CleanupRegistrar, recv reflect.Type, name string, fn any) error {
	previous, existed := lookupBinding(instanceBindings, recv, name)

	if err := Bind(recv, name, fn); err != nil {
		return err
	}

	t.Cleanup(func() {
		if existed {
			register(instanceBindings, recv, name, previous)

			return
		}

		unregister(instanceBindings, recv, name)
	})

	return nil
}

// CleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type CleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// StaticMembers returns the sorted names of the static bindings registered for typ.
func StaticMembers(typ reflect.Type) []string {
	return boundNames(staticBindings, typ)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional: generated init functions fill it
	instanceBindings = newBindings()
	//nolint:gochecknoglobals // Package-level registry is intentional: generated init functions fill it
	staticBindings = newBindings()
)

type bindingKey struct {
	typ  reflect.Type
	name string
}

// bindings is a registry of functions by owning type and member name.
// It is safe for concurrent registration and lookup.
type bindings struct {
	mu    sync.RWMutex
	funcs map[bindingKey]reflect.Value
}

func boundNames(registry *bindings, typ reflect.Type) []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0)

	for key := range registry.funcs {
		if key.typ == typ {
			names = append(names, key.name)
		}
	}

	slices.Sort(names)

	return names
}

func checkBinding(typ reflect.Type, name string, fn reflect.Value) error {
	switch {
	case typ == nil:
		return fmt.Errorf("%w: %s: nil type", ErrInvalidBinding, name)
	case name == "":
		return fmt.Errorf("%w: empty name for %v", ErrInvalidBinding, typ)
	case !fn.IsValid() || fn.Kind() != reflect.Func:
		return fmt.Errorf("%w: %s on %v: %v is not a function", ErrInvalidBinding, name, typ, fn.Kind())
	case fn.IsNil():
		return fmt.Errorf("%w: %s on %v: nil function", ErrInvalidBinding, name, typ)
	}

	return nil
}

func lookupBinding(registry *bindings, typ reflect.Type, name string) (reflect.Value, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	fn, ok := registry.funcs[bindingKey{typ: typ, name: name}]

	return fn, ok
}

func newBindings() *bindings {
	return &bindings{funcs: make(map[bindingKey]reflect.Value)}
}

func register(registry *bindings, typ reflect.Type, name string, fn reflect.Value) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.funcs[bindingKey{typ: typ, name: name}] = fn
}

func unregister(registry *bindings, typ reflect.Type, name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	delete(registry.funcs, bindingKey{typ: typ, name: name})
}
