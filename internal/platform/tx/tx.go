package tx

import "context"

// Manager runs fn as one unit of work. Stores read the active transaction
// from the ctx passed to fn; nested calls join the outer unit.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly. Services fall back to it when no store
// transaction is wired.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Value runs fn inside m and returns its result; the zero value is returned
// when the unit of work fails.
func Value[T any](ctx context.Context, m Manager, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := m.Within(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
