package filectx

import "sync"

// cellState is the three-way state of a compute-once lazy slot (spec.md
// §9 "Lazy file context"): nothing computed yet, a value, or a recorded
// error. A cell never transitions back to empty and never recomputes once
// it has settled, so cross-predicate caching within one file is automatic.
type cellState int

const (
	cellEmpty cellState = iota
	cellLoaded
	cellErrored
)

// cell is a generic compute-once memoization slot, used for each of the
// three lazy accessors on Context (metadata, content, and one tree per
// language). Safe for concurrent Get from multiple goroutines, though in
// practice each Context is owned by exactly one evaluation task (spec.md
// §3 "a file context is owned by exactly one evaluation task").
type cell[T any] struct {
	once  sync.Once
	state cellState
	value T
	err   error
}

// get runs compute at most once and returns the memoized result on every
// subsequent call.
func (c *cell[T]) get(compute func() (T, error)) (T, error) {
	c.once.Do(func() {
		v, err := compute()
		if err != nil {
			c.state = cellErrored
			c.err = err
			return
		}
		c.state = cellLoaded
		c.value = v
	})
	return c.value, c.err
}
