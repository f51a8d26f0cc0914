package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsEachNodeOnce(t *testing.T) {
	shared := NewObject()
	l := NewList(shared, shared)
	root := NewObject()
	root.Set("l", l)
	root.Set("s", shared)

	var visited []any
	Walk(root, func(n any) bool {
		visited = append(visited, n)
		return true
	})
	assert.Len(t, visited, 3) // root, l, shared
}

func TestWalkCycle(t *testing.T) {
	a := NewObject()
	b := NewObject()
	a.Set("next", b)
	b.Set("next", a)

	count := 0
	Walk(a, func(any) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

func TestWalkStops(t *testing.T) {
	root := NewObject()
	root.Set("a", NewObject())
	root.Set("b", NewObject())

	count := 0
	Walk(root, func(any) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestWalkSetAndDictChildren(t *testing.T) {
	member := NewObject()
	s := NewSet(member, "scalar")
	keyNode := NewObject()
	d := NewDict()
	d.Set(keyNode, NewList())
	root := NewObject()
	root.Set("s", s)
	root.Set("d", d)

	seen := map[any]bool{}
	Walk(root, func(n any) bool {
		seen[n] = true
		return true
	})
	require.True(t, seen[member])
	require.True(t, seen[keyNode], "dict keys that are nodes are visited")
	assert.Len(t, seen, 6) // root, s, member, d, keyNode, list
}

func TestShare(t *testing.T) {
	c := NewObject()
	b := NewObject()
	b.Set("c", c)
	sib := NewObject()
	a := NewObject()
	a.Set("b", b)
	a.Set("sib", sib)

	// Simulate a path copy of a.b.c with sib shared.
	c2 := c.Clone()
	b2 := b.Clone()
	b2.Set("c", c2)
	a2 := a.Clone()
	a2.Set("b", b2)

	r := Share(a, a2)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 1, r.Reused) // sib
	assert.Equal(t, 3, r.Copied)
}

func TestShareIdentical(t *testing.T) {
	a := NewObject()
	a.Set("x", NewList())
	r := Share(a, a)
	assert.Equal(t, r.Total, r.Reused)
	assert.Zero(t, r.Copied)
}
