// Package keywords implements Component F (spec.md §4.F): one evaluator
// function per keyword family, dispatched by EvaluateSchema in priority
// order over the active vocabulary. Grounded on jacoelho-xsd's
// internal/facets/*.go (one small file per constraint family, a struct
// plus a Validate method) for shape; exact JSON Schema semantics per
// spec.md §4.F and the draft/vocabulary table in SPEC_FULL.md §6.2.
package keywords

import (
	"fmt"
	"strings"

	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// siblingValue returns the parsed value of another keyword on the same
// schema node, used by keywords whose semantics depend on a sibling's
// literal arguments rather than on runtime annotations (e.g.
// additionalProperties consulting properties/patternProperties,
// additionalItems consulting items, items consulting prefixItems).
func siblingValue(sch *schema.Schema, name string) (any, bool) {
	if sch == nil || sch.IsBoolean {
		return nil, false
	}
	for _, kw := range sch.Keywords {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

// pushChildSchema descends into a subschema keeping the current instance,
// evaluates it, pops, and returns the resulting node. Used by every
// schema-only applicator (allOf, anyOf, oneOf, not, if/then/else,
// dependentSchemas, contentSchema).
func pushChildSchema(ctx *evalctx.Context, resolver *refresolve.Resolver, evaluationPath string, sub *schema.Schema) *result.Node {
	ctx.PushSchemaOnly(evaluationPath, sub)
	child := EvaluateSchema(ctx, resolver)
	ctx.Pop()
	return child
}

// pushChildInstance descends into a child instance location and
// subschema, evaluates it, pops, and returns the resulting node. Used by
// properties, patternProperties, items, prefixItems, contains,
// propertyNames.
func pushChildInstance(ctx *evalctx.Context, resolver *refresolve.Resolver, instanceLocation string, instance any, evaluationPath string, sub *schema.Schema) *result.Node {
	ctx.PushInstance(instanceLocation, instance, evaluationPath, sub)
	child := EvaluateSchema(ctx, resolver)
	ctx.Pop()
	return child
}

// foldValid folds child's validity into node without suppressing it,
// matching ordinary applicator propagation (everything except "not" and
// the discarded "if" probe).
func foldValid(node, child *result.Node) {
	node.AddChild(child)
	if !child.Valid {
		node.Valid = false
	}
}

func pointerAppend(path, segment string) string {
	return path + "/" + escapeSegment(segment)
}

func escapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func indexSegment(i int) string {
	return fmt.Sprintf("%d", i)
}
