package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grafite-dev/grafite/value"
)

func mustParse(t *testing.T, doc string) any {
	t.Helper()
	v, err := value.FromJSON([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestParseEdits(t *testing.T) {
	edits, err := parseEdits(
		[]string{`a.b=5`, `name="x"`, `items.0={"k":true}`},
		[]string{"old.field"},
	)
	require.NoError(t, err)
	require.Len(t, edits, 4)

	assert.Equal(t, []string{"a", "b"}, edits[0].path)
	assert.Equal(t, int64(5), edits[0].value)
	assert.Equal(t, "x", edits[1].value)
	assert.IsType(t, &value.Object{}, edits[2].value)
	assert.True(t, edits[3].remove)
	assert.Equal(t, []string{"old", "field"}, edits[3].path)
}

func TestParseEditsErrors(t *testing.T) {
	cases := []struct {
		name string
		sets []string
		dels []string
	}{
		{"missing equals", []string{"a.b"}, nil},
		{"bad json value", []string{"a.b=not-json"}, nil},
		{"empty path", []string{"=1"}, nil},
		{"empty segment", nil, []string{"a..b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseEdits(tc.sets, tc.dels)
			assert.Error(t, err)
		})
	}
}

func TestApplyEditsSetAndDelete(t *testing.T) {
	doc := mustParse(t, `{"server":{"port":3000,"host":"localhost"},"tags":["a","b"],"legacy":1}`)

	edits, err := parseEdits(
		[]string{`server.port=8080`, `tags.1="c"`},
		[]string{"legacy"},
	)
	require.NoError(t, err)

	res, err := applyEdits(doc, edits, zap.NewNop())
	require.NoError(t, err)

	out, err := value.ToJSON(res)
	require.NoError(t, err)
	assert.Equal(t, `{"server":{"port":8080,"host":"localhost"},"tags":["a","c"]}`, string(out))

	// The input document is untouched.
	orig, err := value.ToJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"server":{"port":3000,"host":"localhost"},"tags":["a","b"],"legacy":1}`, string(orig))
}

func TestApplyEditsStructuralSharing(t *testing.T) {
	doc := mustParse(t, `{"a":{"x":1},"b":{"y":2}}`)

	edits, err := parseEdits([]string{`a.x=9`}, nil)
	require.NoError(t, err)

	res, err := applyEdits(doc, edits, zap.NewNop())
	require.NoError(t, err)

	// The untouched branch is shared by reference with the input.
	origB, _ := doc.(*value.Object).Get("b")
	newB, _ := res.(*value.Object).Get("b")
	assert.Same(t, origB.(*value.Object), newB.(*value.Object))

	r := value.Share(doc, res)
	assert.Equal(t, 1, r.Reused)
	assert.Equal(t, 2, r.Copied) // root and "a"
}

func TestApplyEditsNoEffectKeepsIdentity(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)

	edits, err := parseEdits([]string{`a=1`}, nil)
	require.NoError(t, err)

	res, err := applyEdits(doc, edits, zap.NewNop())
	require.NoError(t, err)
	assert.Same(t, doc.(*value.Object), res.(*value.Object))
}

func TestApplyEditsAppend(t *testing.T) {
	doc := mustParse(t, `{"items":[1,2]}`)

	edits, err := parseEdits([]string{`items.2=3`}, nil)
	require.NoError(t, err)

	res, err := applyEdits(doc, edits, zap.NewNop())
	require.NoError(t, err)

	out, err := value.ToJSON(res)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[1,2,3]}`, string(out))
}

func TestApplyEditsErrors(t *testing.T) {
	doc := mustParse(t, `{"a":{"x":1},"n":5,"items":[1]}`)

	cases := []struct {
		name string
		sets []string
		dels []string
	}{
		{"missing intermediate", []string{"missing.x=1"}, nil},
		{"path through scalar", []string{"n.x=1"}, nil},
		{"delete missing field", nil, []string{"a.zzz"}},
		{"index out of range", []string{"items.5=1"}, nil},
		{"delete array element", nil, []string{"items.0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edits, err := parseEdits(tc.sets, tc.dels)
			require.NoError(t, err)
			_, err = applyEdits(doc, edits, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
