package result_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/result"
)

func TestFailRendersTemplate(t *testing.T) {
	n := result.NewNode("#", "", "#")
	n.Fail("minimum", "Minimum", map[string]any{"received": 2, "limit": 3})
	require.False(t, n.Valid)
	require.Equal(t, "2 is less than the minimum of 3", n.Errors[0].Message)
}

func TestToFlagIgnoresDetail(t *testing.T) {
	n := result.NewNode("#", "", "#")
	n.Fail("type", "bad", nil)
	require.Equal(t, result.FlagResult{Valid: false}, n.ToFlag())
}

func TestToListFlattensNested(t *testing.T) {
	root := result.NewNode("#", "", "#")
	child := result.NewNode("#/allOf/0", "", "#/allOf/0")
	child.Fail("type", "bad", nil)
	root.AddChild(child)
	items := root.ToList()
	require.Len(t, items, 2)
	require.True(t, items[0].Valid)
	require.False(t, items[1].Valid)
}

func TestSetTemplateOverride(t *testing.T) {
	result.SetTemplate("Minimum", "too small: [[received]]")
	t.Cleanup(func() { result.SetTemplate("Minimum", "[[received]] is less than the minimum of [[limit]]") })
	require.Equal(t, "too small: 1", result.RenderTemplate("Minimum", map[string]any{"received": 1}))
}
