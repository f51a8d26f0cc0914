package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want Kind
	}{
		{"object", NewObject(), KindObject},
		{"list", NewList(), KindList},
		{"dict", NewDict(), KindDict},
		{"set", NewSet(), KindSet},
		{"box", NewBox(1), KindBox},
		{"time", NewTime(time.Now()), KindTime},
		{"pattern", NewPattern(nil), KindPattern},
		{"string", "s", KindInvalid},
		{"int", int64(1), KindInvalid},
		{"nil", nil, KindInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.v))
			assert.Equal(t, tc.want != KindInvalid, IsNode(tc.v))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "set", KindSet.String())
	assert.Equal(t, "invalid", KindInvalid.String())
}

func TestObjectOrderAndDelete(t *testing.T) {
	o := NewObject()
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3) // re-assignment keeps the original position
	assert.Equal(t, []string{"b", "a"}, o.Keys())

	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	require.True(t, o.Delete("b"))
	assert.False(t, o.Delete("b"))
	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, 1, o.Len())
}

func TestObjectRangeStops(t *testing.T) {
	o := NewObject()
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("c", 3)

	var seen []string
	o.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestListBasics(t *testing.T) {
	l := NewList(1, 2, 3)
	assert.Equal(t, 3, l.Len())
	l.Set(0, 10)
	assert.Equal(t, 10, l.Get(0))
	l.Append(4, 5)
	assert.Equal(t, 5, l.Len())
	l.Truncate(2)
	assert.Equal(t, 2, l.Len())
	l.Truncate(9)
	assert.Equal(t, 2, l.Len())
	l.Truncate(-1)
	assert.Equal(t, 0, l.Len())
}

func TestDictOrderAndNonStringKeys(t *testing.T) {
	d := NewDict()
	d.Set("s", 1)
	d.Set(42, 2)
	d.Set(true, 3)
	assert.Equal(t, []any{"s", 42, true}, d.Keys())

	v, ok := d.Get(42)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	require.True(t, d.Delete(42))
	assert.Equal(t, []any{"s", true}, d.Keys())

	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Keys())
}

func TestSetMembershipAndOrder(t *testing.T) {
	s := NewSet("a", "b", "a")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []any{"a", "b"}, s.Members())

	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("c"))
	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	assert.Equal(t, []any{"a", "c"}, s.Members())

	// Delete keeps the index consistent for later lookups.
	assert.True(t, s.Has("c"))
	assert.True(t, s.Delete("c"))
	assert.Equal(t, []any{"a"}, s.Members())
}

func TestSetReplace(t *testing.T) {
	t.Run("keeps position", func(t *testing.T) {
		s := NewSet("a", "b", "c")
		require.True(t, s.Replace("b", "B"))
		assert.Equal(t, []any{"a", "B", "c"}, s.Members())
		assert.False(t, s.Has("b"))
	})

	t.Run("absent old", func(t *testing.T) {
		s := NewSet("a")
		assert.False(t, s.Replace("x", "y"))
	})

	t.Run("new already a member drops old", func(t *testing.T) {
		s := NewSet("a", "b")
		require.True(t, s.Replace("a", "b"))
		assert.Equal(t, []any{"b"}, s.Members())
	})
}

func TestCloneIsShallow(t *testing.T) {
	child := NewObject()
	o := NewObject()
	o.Set("c", child)

	c := o.Clone()
	require.NotSame(t, o, c)
	got, _ := c.Get("c")
	assert.Same(t, child, got.(*Object))

	c.Set("extra", 1)
	assert.False(t, o.Has("extra"))
}

func TestPatternClone(t *testing.T) {
	p, err := CompilePattern(`^x$`)
	require.NoError(t, err)
	c := p.Clone()
	assert.NotSame(t, p.Regexp(), c.Regexp())
	assert.True(t, c.Regexp().MatchString("x"))

	_, err = CompilePattern(`[`)
	assert.Error(t, err)
}
