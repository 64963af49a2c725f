package core

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Matcher is satisfied by pry's match package and by gomega matchers.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison, and describes a mismatch with a diff
// that includes unexported fields.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	diff := cmp.Diff(expected, actual, cmp.Exporter(func(reflect.Type) bool { return true }))

	return false, fmt.Sprintf("expected %v, got %v (-expected +actual):\n%s", expected, actual, diff)
}
