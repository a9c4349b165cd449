package evalctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

func TestPushPopRoundtrips(t *testing.T) {
	ctx := evalctx.New(registry.New(), evalctx.Options{Format: result.Hierarchical}, nil)
	root := schema.Boolean(true)
	ctx.PushInstance("", map[string]any{}, "#", root)
	require.Equal(t, 1, ctx.FrameDepth())
	n := ctx.Pop()
	require.NotNil(t, n)
	require.Equal(t, 0, ctx.FrameDepth())
}

func TestShortCircuitFlagWithoutUnevaluated(t *testing.T) {
	ctx := evalctx.New(registry.New(), evalctx.Options{Format: result.Flag}, nil)
	ctx.PushInstance("", 1, "#", &schema.Schema{})
	require.True(t, ctx.ShortCircuit())
}

func TestNoShortCircuitWhenUnevaluatedPresent(t *testing.T) {
	ctx := evalctx.New(registry.New(), evalctx.Options{Format: result.Flag}, nil)
	sch := &schema.Schema{Keywords: []schema.KeywordInstance{{Name: "unevaluatedProperties"}}}
	ctx.PushInstance("", map[string]any{}, "#", sch)
	require.False(t, ctx.ShortCircuit())
}

func TestCheckCycleDetectsReentry(t *testing.T) {
	ctx := evalctx.New(registry.New(), evalctx.Options{}, nil)
	require.False(t, ctx.CheckCycle("#/a", ""))
	require.True(t, ctx.CheckCycle("#/a", ""))
	ctx.ReleaseCycleGuard("#/a", "")
	require.False(t, ctx.CheckCycle("#/a", ""))
}

func TestDynamicScopeStack(t *testing.T) {
	ctx := evalctx.New(registry.New(), evalctx.Options{}, nil)
	exit := ctx.EnterDynamicScope("https://example.com/a")
	require.Equal(t, []string{"https://example.com/a"}, ctx.DynamicScope())
	exit()
	require.Empty(t, ctx.DynamicScope())
}
