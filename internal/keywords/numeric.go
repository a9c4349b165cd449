package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/jsonvalue"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// evaluateMultipleOf passes iff the instance modulo the divisor is zero,
// using exact decimal arithmetic rather than floating point (spec.md §4.F
// "multipleOf").
func evaluateMultipleOf(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	mv := kw.Value.(schema.MultipleOfValue)
	instance := ctx.Current().Instance
	n, ok := jsonvalue.AsNumber(instance)
	if !ok {
		return // category 4: wrong value kind, not a failure.
	}
	if mv.Divisor.IsZero() {
		return
	}
	if !n.Mod(mv.Divisor).IsZero() {
		node.Fail("multipleOf", "MultipleOf", map[string]any{"received": n.String(), "divisor": mv.Divisor.String()})
	}
}

// evaluateNumericBound implements minimum/maximum/exclusiveMinimum/
// exclusiveMaximum (spec.md §4.F). Draft6+ only: both pairs are always
// standalone numerics in the drafts this engine supports.
func evaluateNumericBound(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	bv := kw.Value.(schema.NumericBoundValue)
	instance := ctx.Current().Instance
	n, ok := jsonvalue.AsNumber(instance)
	if !ok {
		return
	}

	isMin := kw.Name == "minimum" || kw.Name == "exclusiveMinimum"

	if isMin {
		if bv.Exclusive {
			if !n.GreaterThan(bv.Limit) {
				node.Fail("exclusiveMinimum", "ExclusiveMinimum", map[string]any{"received": n.String(), "limit": bv.Limit.String()})
			}
			return
		}
		if n.LessThan(bv.Limit) {
			node.Fail("minimum", "Minimum", map[string]any{"received": n.String(), "limit": bv.Limit.String()})
		}
		return
	}

	if bv.Exclusive {
		if !n.LessThan(bv.Limit) {
			node.Fail("exclusiveMaximum", "ExclusiveMaximum", map[string]any{"received": n.String(), "limit": bv.Limit.String()})
		}
		return
	}
	if n.GreaterThan(bv.Limit) {
		node.Fail("maximum", "Maximum", map[string]any{"received": n.String(), "limit": bv.Limit.String()})
	}
}
