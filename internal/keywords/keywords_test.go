package keywords_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/compile"
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/keywords"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/result"
)

func evaluate(t *testing.T, raw map[string]any, instance any) *result.Node {
	t.Helper()
	reg := registry.New()
	builder := compile.NewBuilder(reg, compile.Options{}, nil)
	root, err := builder.Compile(raw, "https://example.com/schema")
	require.NoError(t, err)

	resolver := refresolve.New(reg, builder)
	ctx := evalctx.New(reg, evalctx.Options{}, nil)
	ctx.PushInstance("", instance, "#", root)
	defer ctx.Pop()

	return keywords.EvaluateSchema(ctx, resolver)
}

func TestEvaluateSchemaTypeMismatch(t *testing.T) {
	node := evaluate(t, map[string]any{"type": "string"}, 42)
	require.False(t, node.Valid)
	require.Equal(t, "type", node.Errors[0].Keyword)
}

func TestEvaluateSchemaRequiredMissing(t *testing.T) {
	node := evaluate(t, map[string]any{
		"type":     "object",
		"required": []any{"name"},
	}, map[string]any{})
	require.False(t, node.Valid)
}

func TestEvaluateSchemaAllOfEveryBranch(t *testing.T) {
	node := evaluate(t, map[string]any{
		"allOf": []any{
			map[string]any{"type": "integer"},
			map[string]any{"minimum": 1},
		},
	}, 0)
	require.False(t, node.Valid)

	node = evaluate(t, map[string]any{
		"allOf": []any{
			map[string]any{"type": "integer"},
			map[string]any{"minimum": 1},
		},
	}, 2)
	require.True(t, node.Valid)
}

func TestEvaluateSchemaNotSuppressesNestedResult(t *testing.T) {
	node := evaluate(t, map[string]any{"not": map[string]any{"type": "string"}}, 5)
	require.True(t, node.Valid)
	require.NotEmpty(t, node.Nested)
	require.True(t, node.Nested[0].Suppressed)
}

func TestEvaluateSchemaPropertiesAnnotatesEvaluatedKeys(t *testing.T) {
	node := evaluate(t, map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}, map[string]any{"name": "a"})
	require.True(t, node.Valid)
	require.Contains(t, node.Annotations, "properties")
}

func TestEvaluateSchemaContainsMatchesObjectPropertiesInDraftNext(t *testing.T) {
	raw := map[string]any{
		"$schema":  "https://json-schema.org/draft/next/schema",
		"contains": map[string]any{"type": "integer"},
	}
	node := evaluate(t, raw, map[string]any{"a": "x", "b": 1})
	require.True(t, node.Valid)
	require.ElementsMatch(t, []string{"b"}, node.Annotations["contains"])

	node = evaluate(t, raw, map[string]any{"a": "x", "b": "y"})
	require.False(t, node.Valid)
}

func TestEvaluateSchemaUnevaluatedItemsConsumesContainsAnnotation(t *testing.T) {
	raw := map[string]any{
		"contains":         map[string]any{"type": "string"},
		"unevaluatedItems": false,
	}
	node := evaluate(t, raw, []any{"foo"})
	require.True(t, node.Valid)

	node = evaluate(t, raw, []any{"foo", 1})
	require.False(t, node.Valid)
}

func TestEvaluateSchemaBooleanFalse(t *testing.T) {
	reg := registry.New()
	builder := compile.NewBuilder(reg, compile.Options{}, nil)
	root, err := builder.Compile(false, "https://example.com/bool")
	require.NoError(t, err)

	resolver := refresolve.New(reg, builder)
	ctx := evalctx.New(reg, evalctx.Options{}, nil)
	ctx.PushInstance("", "anything", "#", root)
	defer ctx.Pop()

	node := keywords.EvaluateSchema(ctx, resolver)
	require.False(t, node.Valid)
}
