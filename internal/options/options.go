// Package options implements the functional options used by the verifier and
// the key blob encoder.
package options

// Option configures a target of type T. Options are applied in order and the
// first failing option aborts construction.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option that may reject its value.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option that always succeeds.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// ApplyAndValidate applies opts and then runs validate on the result, so
// cross-option constraints are checked once, after every option has been seen.
func ApplyAndValidate[T any](target T, validate func(T) error, opts ...Option[T]) error {
	if err := Apply(target, opts...); err != nil {
		return err
	}
	if validate == nil {
		return nil
	}

	return validate(target)
}
