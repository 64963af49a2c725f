package core

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Exported variables.
var (
	// ErrInvalidBinding is raised when a function registered with Bind or BindStatic has the wrong shape.
	ErrInvalidBinding = errors.New("invalid binding")
	// ErrInvalidSubject is returned when a value cannot be opened for access.
	ErrInvalidSubject = errors.New("invalid subject")
	// ErrMemberNotFound is returned when a name does not resolve to a member that is present.
	ErrMemberNotFound = errors.New("member not found")
	// ErrReadOnly is returned when writing through a copy of the subject.
	ErrReadOnly = errors.New("member is read-only")
	// ErrTypeMismatch is returned when a value, argument or result has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// MemberError reports a name that did not resolve on a subject.
// It unwraps to ErrMemberNotFound.
type MemberError struct {
	Type        reflect.Type
	Member      string
	Reason      string
	Suggestions []string
}

func (e *MemberError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%v: %q on %v", ErrMemberNotFound, e.Member, e.Type)

	if e.Reason != "" {
		builder.WriteString(" (" + e.Reason + ")")
	}

	if len(e.Suggestions) > 0 {
		builder.WriteString("; did you mean " + quoteAll(e.Suggestions) + "?")
	}

	return builder.String()
}

func (e *MemberError) Unwrap() error {
	return ErrMemberNotFound
}

// unexported constants.
const (
	maxSuggestions = 3
)

// quoteAll renders names as a human list: "a", "b" or "c".
func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

// suggest returns up to maxSuggestions candidates close to name, nearest first.
// Case-insensitive matches always qualify, since exported/unexported mix-ups are the common typo.
func suggest(name string, candidates []string) []string {
	type scored struct {
		name     string
		distance int
	}

	threshold := max(1, len(name)/3) //nolint:mnd // a third of the name may differ

	found := make([]scored, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}

		distance := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if distance > threshold {
			continue
		}

		found = append(found, scored{name: candidate, distance: distance})
	}

	slices.SortStableFunc(found, func(a, b scored) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}

		return strings.Compare(a.name, b.name)
	})

	names := make([]string, 0, min(len(found), maxSuggestions))
	for _, s := range found[:min(len(found), maxSuggestions)] {
		names = append(names, s.name)
	}

	return names
}
