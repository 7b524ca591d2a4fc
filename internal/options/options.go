// Package options implements a generic functional-option pattern, shared by
// every constructor in this module that takes a variadic opts list (e.g.
// store.Option = options.Option[*store.Store]).
package options

// Option configures a value of type T, returning an error if the
// configuration is invalid. Constructors accept ...Option[T] and apply them
// in order via Apply.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps fn as an Option[T]. Use this for options whose configuration can
// fail (e.g. a buffer size that must be positive).
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs each option against target in order, stopping at and returning
// the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps fn as an Option[T] for configuration that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
