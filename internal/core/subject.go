package core

// TestReporter is the minimal interface pry needs from test frameworks.
type TestReporter interface {
	Fatalf(format string, args ...any)
	Helper()
}

// Subject wraps an Accessor so that every failed operation fails the test instead of
// returning an error.
type Subject struct {
	t   TestReporter
	acc *Accessor
}

// NewSubject opens subject for access. It fails the test, and returns nil, when subject cannot be opened.
func NewSubject(t TestReporter, subject any, opts ...Option) *Subject {
	t.Helper()

	acc, err := Open(subject, opts...)
	if err != nil {
		t.Fatalf("pry: %v", err)

		return nil
	}

	return &Subject{t: t, acc: acc}
}

// Accessor returns the error-returning accessor underneath.
func (s *Subject) Accessor() *Accessor {
	return s.acc
}

// Call invokes the method called name and returns its results.
func (s *Subject) Call(name string, args ...any) []any {
	s.t.Helper()

	results, err := s.acc.Invoke(name, args...)
	if err != nil {
		s.t.Fatalf("pry: calling %s: %v", name, err)
	}

	return results
}

// Field returns the member at path.
func (s *Subject) Field(path string) any {
	s.t.Helper()

	value, err := s.acc.Get(path)
	if err != nil {
		s.t.Fatalf("pry: reading %s: %v", path, err)
	}

	return value
}

// FieldShould fails the test unless the member at path matches expected,
// which may be a plain value or a Matcher.
func (s *Subject) FieldShould(path string, expected any) {
	s.t.Helper()

	actual, err := s.acc.Get(path)
	if err != nil {
		s.t.Fatalf("pry: reading %s: %v", path, err)

		return
	}

	if ok, msg := MatchValue(actual, expected); !ok {
		s.t.Fatalf("pry: %s: %s", path, msg)
	}
}

// Has reports whether the member at path is set.
func (s *Subject) Has(path string) bool {
	return s.acc.Has(path)
}

// SetField writes value to the member at path.
func (s *Subject) SetField(path string, value any) {
	s.t.Helper()

	if err := s.acc.Set(path, value); err != nil {
		s.t.Fatalf("pry: writing %s: %v", path, err)
	}
}

// Unset removes the member at path.
func (s *Subject) Unset(path string) {
	s.t.Helper()

	if err := s.acc.Unset(path); err != nil {
		s.t.Fatalf("pry: removing %s: %v", path, err)
	}
}
