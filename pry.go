// Package pry gives tests access to the unexported members of the values they test.
//
// Fields, exported or not, are read and written by name through an Accessor:
//
//	acc, err := pry.Open(&subject)
//	count, err := pry.GetAs[int](acc, "count")
//	err = acc.Set("cache.entries.key", value)
//
// Go reflection cannot call unexported methods, so those are bound ahead of time by a
// generated test file (see prygen) and then invoked by name:
//
//	//go:generate prygen Calculator
//	sum, err := pry.InvokeAs[int](acc, "add", 2, 3)
//
// Every miss is an error: ErrMemberNotFound for names that do not resolve, ErrTypeMismatch for
// values and arguments of the wrong type.
//
// This is the public API entry point. Implementation lives in internal/core.
package pry

import (
	"fmt"
	"reflect"

	"github.com/toejough/pry/internal/core"
)

// Errors re-exported from internal/core.
var (
	ErrInvalidBinding = core.ErrInvalidBinding
	ErrInvalidSubject = core.ErrInvalidSubject
	ErrMemberNotFound = core.ErrMemberNotFound
	ErrReadOnly       = core.ErrReadOnly
	ErrTypeMismatch   = core.ErrTypeMismatch
)

// Accessor forwards reads, writes and calls to the members of a single subject by name.
type Accessor = core.Accessor

// Matcher is satisfied by the match package and by gomega matchers.
type Matcher = core.Matcher

// MemberError reports a name that did not resolve on a subject.
type MemberError = core.MemberError

// Option configures an Accessor.
type Option = core.Option

// Subject wraps an Accessor so that every failed operation fails the test.
type Subject = core.Subject

// TestReporter is the minimal interface pry needs from test frameworks.
type TestReporter = core.TestReporter

// Bind registers fn as the instance member called name of T. fn's first parameter must accept T,
// as a method expression such as (*T).name does. It panics on a malformed binding, so it belongs
// in an init function.
func Bind[T any](name string, fn any) {
	err := core.Bind(reflect.TypeFor[T](), name, fn)
	if err != nil {
		panic(fmt.Sprintf("pry.Bind: %v", err))
	}
}

// BindScoped registers an instance binding for the duration of the calling test.
func BindScoped[T any](t interface {
	TestReporter
	Cleanup(cleanupFunc func())
}, name string, fn any,
) {
	t.Helper()

	err := core.BindScoped(t, reflect.TypeFor[T](), name, fn)
	if err != nil {
		t.Fatalf("pry.BindScoped: %v", err)
	}
}

// BindStatic registers fn as the static member called name of T. It panics on a malformed binding.
func BindStatic[T any](name string, fn any) {
	err := core.BindStatic(reflect.TypeFor[T](), name, fn)
	if err != nil {
		panic(fmt.Sprintf("pry.BindStatic: %v", err))
	}
}

// GetAs returns the member at path as R.
func GetAs[R any](acc *Accessor, path string) (R, error) {
	return core.GetAs[R](acc, path)
}

// InvokeAs calls the method called name and returns its first result as R.
func InvokeAs[R any](acc *Accessor, name string, args ...any) (R, error) {
	return core.InvokeAs[R](acc, name, args...)
}

// InvokeStatic calls the static member called name of T.
func InvokeStatic[T any](name string, args ...any) ([]any, error) {
	return core.InvokeStatic(reflect.TypeFor[T](), name, args)
}

// MatchValue checks if actual matches expected, which may be a plain value or a Matcher.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// New opens subject for a test: every failed operation fails t.
func New(t TestReporter, subject any, opts ...Option) *Subject {
	t.Helper()

	return core.NewSubject(t, subject, opts...)
}

// Open returns an Accessor for subject.
//
// A non-nil pointer gives full access. A map with string-kinded keys exposes its entries as members,
// and writes create entries. A struct value is opened on a private copy and is read-only, map
// entries included, until a path passes through a pointer.
func Open(subject any, opts ...Option) (*Accessor, error) {
	return core.Open(subject, opts...)
}

// StaticMembers returns the names of the static members bound for T.
func StaticMembers[T any]() []string {
	return core.StaticMembers(reflect.TypeFor[T]())
}

// WithConversion lets Set and Invoke convert values that are convertible but not assignable.
func WithConversion() Option {
	return core.WithConversion()
}

// WithoutSuggestions turns off the "did you mean" search on missing members.
func WithoutSuggestions() Option {
	return core.WithoutSuggestions()
}
