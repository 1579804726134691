package repokit

// Binder is a small factory that binds a repo implementation to a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function into a Binder
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer panics on a nil Queryer, which is always a wiring bug
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind validates q then binds
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
