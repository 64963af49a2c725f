// Package core provides the internal implementation of pry's member accessor
// and binding registry.
package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Accessor forwards reads, writes and calls to the members of a single subject by name,
// exported or not. It is not safe for concurrent use.
type Accessor struct {
	root     reflect.Value // pointer to the subject, or the subject map itself
	base     reflect.Value // the subject value that member paths start from
	readOnly bool
	removed  map[string]bool
	opts     options
}

// Open returns an Accessor for subject.
//
// A non-nil pointer gives full access. A map with string-kinded keys exposes its entries as members,
// and writes create entries. A struct value is opened on a private copy and is read-only, map
// entries included, until a path passes through a pointer.
func Open(subject any, opts ...Option) (*Accessor, error) {
	acc := &Accessor{
		removed: make(map[string]bool),
		opts:    newOptions(opts),
	}

	value := reflect.ValueOf(subject)

	switch {
	case !value.IsValid():
		return nil, fmt.Errorf("%w: nil", ErrInvalidSubject)
	case value.Kind() == reflect.Pointer:
		if value.IsNil() {
			return nil, fmt.Errorf("%w: nil %v", ErrInvalidSubject, value.Type())
		}

		acc.root = value
		acc.base = value.Elem()
	case value.Kind() == reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %v keys are not strings", ErrInvalidSubject, value.Type())
		}

		acc.root = value
		acc.base = value
	case value.Kind() == reflect.Struct:
		copied := reflect.New(value.Type())
		copied.Elem().Set(value)

		acc.root = copied
		acc.base = copied.Elem()
		acc.readOnly = true
	default:
		return nil, fmt.Errorf("%w: %v has no members", ErrInvalidSubject, value.Type())
	}

	return acc, nil
}

// Get returns the current value of the member at path.
// Unknown paths, absent map entries and removed members report ErrMemberNotFound.
// A present member holding a zero or nil value is returned as is.
func (a *Accessor) Get(path string) (any, error) {
	if a.isRemoved(path) {
		return nil, &MemberError{Type: a.base.Type(), Member: path, Reason: "removed"}
	}

	target, err := a.resolve(path)
	if err != nil {
		return nil, err
	}

	value, present := target.current()
	if !present {
		return nil, a.notFound(target.owner, path, "no such entry", target.candidates)
	}

	return value.Interface(), nil
}

// Has reports whether the member at path is present, not removed, and not nil.
// Values of non-nilable kinds count as set even when they are zero.
func (a *Accessor) Has(path string) bool {
	if a.isRemoved(path) {
		return false
	}

	target, err := a.resolve(path)
	if err != nil {
		return false
	}

	value, present := target.current()

	return present && !isNil(value)
}

// Lookup returns the member at path and whether it is present.
// It never confuses an absent member with a member holding a zero value.
func (a *Accessor) Lookup(path string) (any, bool) {
	value, err := a.Get(path)
	if err != nil {
		return nil, false
	}

	return value, true
}

// Members returns the sorted names of the subject's fields, entries and invocable methods.
func (a *Accessor) Members() []string {
	names := memberNames(a.base)

	names = append(names, methodNames(a.root.Type())...)
	names = append(names, boundNames(instanceBindings, a.root.Type())...)

	if a.root.Kind() == reflect.Pointer {
		names = append(names, boundNames(instanceBindings, a.root.Type().Elem())...)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// Set writes value to the member at path, creating map entries that do not exist yet.
// Struct fields cannot be created; the value must be assignable to the member's type.
func (a *Accessor) Set(path string, value any) error {
	target, err := a.resolve(path)
	if err != nil {
		return err
	}

	converted, err := a.opts.coerce(value, target.typ, "member "+path)
	if err != nil {
		return err
	}

	err = target.store(converted)
	if err != nil {
		return err
	}

	// A write makes the member present again, along with every member on the way to it.
	key := a.canonical(path)
	for removed := range a.removed {
		if removed == key || strings.HasPrefix(removed, key+".") || strings.HasPrefix(key, removed+".") {
			delete(a.removed, removed)
		}
	}

	return nil
}

// Unset removes the member at path. Map entries are deleted; fields and elements are reset
// to their zero value and reported as absent by this accessor until they are written again.
func (a *Accessor) Unset(path string) error {
	target, err := a.resolve(path)
	if err != nil {
		return err
	}

	err = target.clear()
	if err != nil {
		return err
	}

	if !target.isEntry() {
		a.removed[a.canonical(path)] = true
	}

	return nil
}

func (a *Accessor) isRemoved(path string) bool {
	if len(a.removed) == 0 {
		return false
	}

	key := a.canonical(path)
	for removed := range a.removed {
		if key == removed || strings.HasPrefix(key, removed+".") {
			return true
		}
	}

	return false
}

// notFound builds a MemberError, with suggestions drawn from candidates unless disabled.
func (a *Accessor) notFound(owner reflect.Type, member, reason string, candidates func() []string) error {
	memberErr := &MemberError{Type: owner, Member: member, Reason: reason}

	if a.opts.suggest && candidates != nil {
		name := member
		if dot := strings.LastIndex(member, "."); dot >= 0 {
			name = member[dot+1:]
		}

		memberErr.Suggestions = suggest(name, candidates())
	}

	return memberErr
}

func isNil(value reflect.Value) bool {
	return isNilable(value.Kind()) && value.IsNil()
}

// memberNames lists what a path segment may name at value: fields or map keys.
func memberNames(value reflect.Value) []string {
	switch value.Kind() {
	case reflect.Struct:
		fields := reflect.VisibleFields(value.Type())

		names := make([]string, 0, len(fields))
		for _, field := range fields {
			names = append(names, field.Name)
		}

		return names
	case reflect.Map:
		names := make([]string, 0, value.Len())
		for _, key := range value.MapKeys() {
			names = append(names, key.String())
		}

		return names
	default:
		return nil
	}
}

func methodNames(typ reflect.Type) []string {
	names := make([]string, 0, typ.NumMethod())
	for i := range typ.NumMethod() {
		names = append(names, typ.Method(i).Name)
	}

	return names
}
