package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

// slot is a resolved member: a struct field, a slice or array element, or a map entry.
type slot struct {
	path       string
	owner      reflect.Type
	typ        reflect.Type
	value      reflect.Value // field or element; invalid for map entries
	mapValue   reflect.Value // owning map; valid for map entries only
	key        reflect.Value
	readOnly   bool
	candidates func() []string
}

func (s slot) clear() error {
	if !s.isEntry() {
		return s.store(reflect.Zero(s.typ))
	}

	if s.readOnly {
		return fmt.Errorf("%w: %q is reached through a copy", ErrReadOnly, s.path)
	}

	if s.mapValue.IsNil() {
		return nil
	}

	s.mapValue.SetMapIndex(s.key, reflect.Value{})

	return nil
}

// current returns the member's value, and false for a map entry that does not exist.
func (s slot) current() (reflect.Value, bool) {
	if !s.isEntry() {
		return s.value, true
	}

	entry := s.mapValue.MapIndex(s.key)

	return entry, entry.IsValid()
}

func (s slot) isEntry() bool {
	return s.mapValue.IsValid()
}

func (s slot) store(value reflect.Value) error {
	if !s.isEntry() {
		if s.readOnly || !s.value.CanSet() {
			return fmt.Errorf("%w: %q is reached through a copy", ErrReadOnly, s.path)
		}

		s.value.Set(value)

		return nil
	}

	if s.readOnly {
		return fmt.Errorf("%w: %q is reached through a copy", ErrReadOnly, s.path)
	}

	if s.mapValue.IsNil() {
		if !s.mapValue.CanSet() {
			return fmt.Errorf("%w: %q is an entry of a nil map", ErrReadOnly, s.path)
		}

		s.mapValue.Set(reflect.MakeMap(s.mapValue.Type()))
	}

	s.mapValue.SetMapIndex(s.key, value)

	return nil
}

// expose returns an addressable value that can be read and written even when it was
// reached through an unexported field.
func expose(value reflect.Value) reflect.Value {
	if !value.CanAddr() {
		return value
	}

	return reflect.NewAt(value.Type(), unsafe.Pointer(value.UnsafeAddr())).Elem()
}

// resolve walks a dot-separated path from the subject to the member it names.
//
//nolint:cyclop,funlen // one case per container kind
func (a *Accessor) resolve(path string) (slot, error) {
	segments := strings.Split(path, ".")
	current := expose(a.base)
	readOnly := a.readOnly

	for i, segment := range segments {
		walked := strings.Join(segments[:i+1], ".")
		last := i == len(segments)-1

		if segment == "" {
			return slot{}, &MemberError{Type: current.Type(), Member: path, Reason: "empty path segment"}
		}

		settled, settledReadOnly, err := settle(current, readOnly)
		if err != nil {
			return slot{}, &MemberError{Type: current.Type(), Member: walked, Reason: err.Error()}
		}

		current, readOnly = settled, settledReadOnly
		owner := current.Type()
		names := func() []string { return memberNames(settled) }

		switch current.Kind() {
		case reflect.Struct:
			field, reason := fieldByName(current, segment)
			if reason != "" {
				return slot{}, a.notFound(owner, walked, reason, names)
			}

			if last {
				return slot{
					path: path, owner: owner, typ: field.Type(), value: field, readOnly: readOnly, candidates: names,
				}, nil
			}

			current = field
		case reflect.Map:
			if current.Type().Key().Kind() != reflect.String {
				return slot{}, a.notFound(owner, walked, "map keys are not strings", nil)
			}

			key := reflect.ValueOf(segment).Convert(current.Type().Key())

			if last {
				return slot{
					path: path, owner: owner, typ: current.Type().Elem(),
					mapValue: current, key: key, readOnly: readOnly, candidates: names,
				}, nil
			}

			entry := current.MapIndex(key)
			if !entry.IsValid() {
				return slot{}, a.notFound(owner, walked, "no such entry", names)
			}

			current = entry
		case reflect.Slice, reflect.Array:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= current.Len() {
				return slot{}, a.notFound(owner, walked, fmt.Sprintf("index out of range [0,%d)", current.Len()), nil)
			}

			element := expose(current.Index(index))

			if last {
				return slot{
					path: path, owner: owner, typ: element.Type(), value: element, readOnly: readOnly,
				}, nil
			}

			current = element
		default:
			return slot{}, a.notFound(owner, walked, fmt.Sprintf("%v has no members", owner), nil)
		}
	}

	// strings.Split always yields at least one segment, and every iteration returns on its last one.
	panic("unreachable: path " + strconv.Quote(path) + " produced no segments")
}

// canonical spells path the way removal marks are keyed: promoted fields are written out through
// the fields that embed them, so every name for one field maps to one key. Segments past the
// point where the path stops resolving are kept as given.
func (a *Accessor) canonical(path string) string {
	segments := strings.Split(path, ".")
	spelled := make([]string, 0, len(segments))
	current := a.base

	for _, segment := range segments {
		current = indirect(current)

		switch current.Kind() {
		case reflect.Struct:
			field, found := current.Type().FieldByName(segment)
			if !found {
				current = reflect.Value{}

				break
			}

			typ := current.Type()
			for _, index := range field.Index {
				if typ.Kind() == reflect.Pointer {
					typ = typ.Elem()
				}

				spelled = append(spelled, typ.Field(index).Name)
				typ = typ.Field(index).Type
			}

			next, err := current.FieldByIndexErr(field.Index)
			if err != nil {
				next = reflect.Value{}
			}

			current = next

			continue
		case reflect.Map:
			if current.Type().Key().Kind() != reflect.String {
				current = reflect.Value{}

				break
			}

			current = current.MapIndex(reflect.ValueOf(segment).Convert(current.Type().Key()))
		case reflect.Slice, reflect.Array:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= current.Len() {
				current = reflect.Value{}

				break
			}

			current = current.Index(index)
		default:
			current = reflect.Value{}
		}

		spelled = append(spelled, segment)
	}

	return strings.Join(spelled, ".")
}

// indirect follows pointers and interfaces, returning the zero Value at a nil.
func indirect(value reflect.Value) reflect.Value {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Value{}
		}

		value = value.Elem()
	}

	return value
}

// fieldByName returns the exposed field, or a reason it cannot be reached.
func fieldByName(structValue reflect.Value, name string) (reflect.Value, string) {
	structField, found := structValue.Type().FieldByName(name)
	if !found {
		return reflect.Value{}, "no such field"
	}

	field, err := structValue.FieldByIndexErr(structField.Index)
	if err != nil {
		return reflect.Value{}, "promoted through a nil embedded pointer"
	}

	return expose(field), ""
}

// settle dereferences pointers and interfaces, and copies non-addressable structs and arrays
// so their fields can be exposed. Anything reached through such a copy is read-only until the
// next pointer.
func settle(value reflect.Value, readOnly bool) (reflect.Value, bool, error) {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Value{}, false, fmt.Errorf("nil %v", value.Type())
		}

		if value.Kind() == reflect.Pointer {
			readOnly = false
		}

		value = value.Elem()
	}

	if (value.Kind() == reflect.Struct || value.Kind() == reflect.Array) && !value.CanAddr() {
		copied := reflect.New(value.Type()).Elem()
		copied.Set(value)

		return copied, true, nil
	}

	return expose(value), readOnly, nil
}
