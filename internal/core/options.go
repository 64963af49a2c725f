package core

// Option configures an Accessor.
type Option func(*options)

// WithConversion lets Set and Invoke convert values that are not directly assignable
// but are convertible (e.g. int to int64). Integer to string conversions are never applied.
func WithConversion() Option {
	return func(o *options) {
		o.convert = true
	}
}

// WithoutSuggestions turns off the "did you mean" search on missing members.
func WithoutSuggestions() Option {
	return func(o *options) {
		o.suggest = false
	}
}

type options struct {
	convert bool
	suggest bool
}

func newOptions(opts []Option) options {
	resolved := options{suggest: true}
	for _, opt := range opts {
		opt(&resolved)
	}

	return resolved
}
