package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema"
)

func mustCompile(t *testing.T, raw map[string]any, opts ...jsonschema.Option) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Compile(raw, opts...)
	require.NoError(t, err)
	return s
}

func TestTypeAndMinimum(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"type":    "integer",
		"minimum": 3,
	})

	res, err := s.Evaluate(2)
	require.NoError(t, err)
	require.False(t, res.Valid())

	res, err = s.Evaluate(5)
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.Evaluate("nope")
	require.NoError(t, err)
	require.False(t, res.Valid())
}

func TestUniqueItemsStructuralEquality(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"type":        "array",
		"uniqueItems": true,
	})

	res, err := s.Evaluate([]any{
		map[string]any{"a": 1, "b": []any{1, 2}},
		map[string]any{"b": []any{1, 2}, "a": 1},
	})
	require.NoError(t, err)
	require.False(t, res.Valid())

	res, err = s.Evaluate([]any{
		map[string]any{"a": 1},
		map[string]any{"a": 2},
	})
	require.NoError(t, err)
	require.True(t, res.Valid())
}

func TestContainsMinMaxContains(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"type":        "array",
		"contains":    map[string]any{"type": "integer"},
		"minContains": 2,
		"maxContains": 3,
	})

	res, err := s.Evaluate([]any{"a", 1, "b"})
	require.NoError(t, err)
	require.False(t, res.Valid(), "only one matching item, below minContains")

	res, err = s.Evaluate([]any{1, 2, "a"})
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.Evaluate([]any{1, 2, 3, 4})
	require.NoError(t, err)
	require.False(t, res.Valid(), "four matching items, above maxContains")
}

func TestUnevaluatedPropertiesWithNestedAllOf(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"allOf": []any{
			map[string]any{
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
			},
		},
		"properties": map[string]any{
			"age": map[string]any{"type": "integer"},
		},
		"unevaluatedProperties": false,
	})

	res, err := s.Evaluate(map[string]any{"name": "a", "age": 1})
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.Evaluate(map[string]any{"name": "a", "age": 1, "extra": true})
	require.NoError(t, err)
	require.False(t, res.Valid())
}

func TestDynamicRefPolymorphism(t *testing.T) {
	raw := map[string]any{
		"$id":             "https://example.com/list",
		"$schema":         "https://json-schema.org/draft/2020-12/schema",
		"$dynamicAnchor":  "items",
		"type":            "array",
		"items":           map[string]any{"$dynamicRef": "#items"},
	}
	s := mustCompile(t, raw)

	res, err := s.Evaluate([]any{[]any{}, []any{}})
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.Evaluate([]any{"not an array"})
	require.NoError(t, err)
	require.False(t, res.Valid())
}

func TestIfThenElse(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"if":   map[string]any{"properties": map[string]any{"kind": map[string]any{"const": "a"}}},
		"then": map[string]any{"required": []any{"aOnly"}},
		"else": map[string]any{"required": []any{"bOnly"}},
	})

	res, err := s.Evaluate(map[string]any{"kind": "a", "aOnly": 1})
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.Evaluate(map[string]any{"kind": "a"})
	require.NoError(t, err)
	require.False(t, res.Valid())

	res, err = s.Evaluate(map[string]any{"kind": "b", "bOnly": 1})
	require.NoError(t, err)
	require.True(t, res.Valid())
}

func TestOutputFormats(t *testing.T) {
	s := mustCompile(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"n": map[string]any{"type": "string"}},
	}, jsonschema.WithOutputFormat(jsonschema.List))

	res, err := s.Evaluate(map[string]any{"n": 1})
	require.NoError(t, err)
	require.False(t, res.Valid())

	items := res.List()
	require.NotEmpty(t, items)

	hier := res.Hierarchical()
	require.NotNil(t, hier)
	require.False(t, hier.Valid)
}

func TestCompileJSONAndEvaluateJSON(t *testing.T) {
	s, err := jsonschema.CompileJSON([]byte(`{"type":"number","multipleOf":0.01}`))
	require.NoError(t, err)

	res, err := s.EvaluateJSON([]byte(`1.23`))
	require.NoError(t, err)
	require.True(t, res.Valid())

	res, err = s.EvaluateJSON([]byte(`1.234`))
	require.NoError(t, err)
	require.False(t, res.Valid())
}

func TestBooleanSchemas(t *testing.T) {
	trueSchema, err := jsonschema.Compile(true)
	require.NoError(t, err)
	res, err := trueSchema.Evaluate("anything")
	require.NoError(t, err)
	require.True(t, res.Valid())

	falseSchema, err := jsonschema.Compile(false)
	require.NoError(t, err)
	res, err = falseSchema.Evaluate("anything")
	require.NoError(t, err)
	require.False(t, res.Valid())
}
