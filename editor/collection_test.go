package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqHandles returns a generator yielding h1, h2, ...
func seqHandles() func() Handle {
	n := 0
	return func() Handle {
		n++
		return Handle(fmt.Sprintf("h%d", n))
	}
}

func TestCollectionAddEnumerate(t *testing.T) {
	c := NewCollection[string](seqHandles())
	a := c.Add("a")
	b := c.Add("b")
	c.Add("")

	assert.Equal(t, Handle("h1"), a)
	assert.Equal(t, Handle("h2"), b)
	assert.Equal(t, []string{"a", "b", ""}, c.Enumerate())
	assert.Equal(t, 3, c.Len())
}

func TestCollectionRemoveMiddleKeepsOrderAndHandles(t *testing.T) {
	c := NewCollection[string](seqHandles())
	a := c.Add("a")
	b := c.Add("b")
	d := c.Add("c")

	require.True(t, c.Remove(b))
	assert.Equal(t, []string{"a", "c"}, c.Enumerate())

	rows := c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, a, rows[0].Handle)
	assert.Equal(t, d, rows[1].Handle)

	assert.False(t, c.Remove(b), "removed handle must not resolve again")

	e := c.Add("e")
	assert.NotEqual(t, b, e, "handles are not reused")
}

func TestCollectionUpdateGet(t *testing.T) {
	c := NewCollection[string](nil)
	h := c.Add("x")

	ok := c.Update(h, func(s *string) { *s = "y" })
	require.True(t, ok)
	v, ok := c.Get(h)
	require.True(t, ok)
	assert.Equal(t, "y", v)

	assert.False(t, c.Update("missing", func(s *string) {}))
	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCollectionRowsIsCopy(t *testing.T) {
	c := NewCollection[string](nil)
	c.Add("x")
	rows := c.Rows()
	rows[0].Value = "mutated"
	assert.Equal(t, []string{"x"}, c.Enumerate())
}

func TestCollectionClear(t *testing.T) {
	c := NewCollection[int](nil)
	c.Add(1)
	c.Add(2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Enumerate())
}

func TestNewHandleUnique(t *testing.T) {
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := NewHandle()
		require.False(t, seen[h])
		seen[h] = true
	}
}
