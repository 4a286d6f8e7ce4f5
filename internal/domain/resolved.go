package domain

// Resolved carries the outcome of a call to an optional collaborator.
// Fallback is true when Value was produced locally because the collaborator
// was absent, timed out, failed or returned something unusable.
type Resolved[T any] struct {
	Value    T
	Fallback bool
	Reason   string
}

func Primary[T any](v T) Resolved[T] {
	return Resolved[T]{Value: v}
}

func Degraded[T any](v T, reason string) Resolved[T] {
	return Resolved[T]{Value: v, Fallback: true, Reason: reason}
}
