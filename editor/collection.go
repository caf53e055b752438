package editor

import "github.com/google/uuid"

// Handle identifies one row of a Collection. Handles are opaque, never
// positional, and never reused within a collection.
type Handle string

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Row is a collection entry together with its handle.
type Row[T any] struct {
	Handle Handle
	Value  T
}

// Collection is an ordered, resizable list of editable rows. Order of
// insertion is order of presentation; removing a row leaves the relative
// order and handles of its siblings untouched.
type Collection[T any] struct {
	rows      []Row[T]
	newHandle func() Handle
}

// NewCollection returns an empty collection minting handles with newHandle,
// or NewHandle when nil.
func NewCollection[T any](newHandle func() Handle) *Collection[T] {
	if newHandle == nil {
		newHandle = NewHandle
	}
	return &Collection[T]{newHandle: newHandle}
}

// Add appends a row holding initial and returns its handle.
func (c *Collection[T]) Add(initial T) Handle {
	h := c.newHandle()
	c.rows = append(c.rows, Row[T]{Handle: h, Value: initial})
	return h
}

// Remove deletes exactly the row identified by h.
func (c *Collection[T]) Remove(h Handle) bool {
	i := c.index(h)
	if i < 0 {
		return false
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	return true
}

// Get returns the value of row h.
func (c *Collection[T]) Get(h Handle) (T, bool) {
	i := c.index(h)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.rows[i].Value, true
}

// Update applies fn to the value of row h in place.
func (c *Collection[T]) Update(h Handle, fn func(*T)) bool {
	i := c.index(h)
	if i < 0 {
		return false
	}
	fn(&c.rows[i].Value)
	return true
}

// Enumerate returns the row values in presentation order.
func (c *Collection[T]) Enumerate() []T {
	out := make([]T, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.Value
	}
	return out
}

// Rows returns a copy of the rows in presentation order.
func (c *Collection[T]) Rows() []Row[T] {
	out := make([]Row[T], len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.rows)
}

// Clear drops every row.
func (c *Collection[T]) Clear() {
	c.rows = nil
}

func (c *Collection[T]) index(h Handle) int {
	for i, r := range c.rows {
		if r.Handle == h {
			return i
		}
	}
	return -1
}
