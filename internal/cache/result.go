package cache

// Result is the outcome of a cache read: either a value or nothing.
// Storage failures and missing keys both collapse to Empty.
type Result[T any] struct {
	value T
	ok    bool
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

func Empty[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether one was present
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

func (r Result[T]) IsEmpty() bool {
	return !r.ok
}

// OrElse returns the value, or fallback when empty
func (r Result[T]) OrElse(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.value
}
