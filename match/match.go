// Package match provides matchers for pry's Subject.FieldShould and MatchValue.
// They are duck-typed against gomega's matcher interface, so gomega matchers can be mixed in:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/toejough/pry/match"
//	)
//
//	sub.FieldShould("cache", match.BeSet)
//	sub.FieldShould("retries", BeNumerically(">", 0))
package match

import (
	"errors"
	"fmt"
	"reflect"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you only care that a member can be read.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// BeSet matches any value except nil and nil pointers, maps, slices, channels, functions and interfaces.
// It mirrors Accessor.Has for a value that has already been read.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeSet Matcher = setMatcher{}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	sub.FieldShould("retries", match.Satisfy(func(n int) error {
//	    if n < 0 { return fmt.Errorf("expected non-negative, got %d", n) }
//	    return nil
//	}))
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

type setMatcher struct{}

func (setMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected a set value, got %#v", actual)
}

func (setMatcher) Match(actual any) (bool, error) {
	if actual == nil {
		return false, nil
	}

	value := reflect.ValueOf(actual)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return !value.IsNil(), nil
	default:
		return true, nil
	}
}
