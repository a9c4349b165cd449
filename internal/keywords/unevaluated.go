package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// collectEvaluatedPropertyNames walks node and its descendant results,
// reading annotations only from nodes at the same instance location
// (properties/items applicators move their children to another location,
// so those children contribute nothing; allOf/anyOf/oneOf/if/then/else/
// $ref/dependentSchemas keep the same location), gathering the names
// claimed by "properties", "patternProperties", "additionalProperties",
// "unevaluatedProperties", and (for a DraftNext object-form "contains")
// "contains" (spec.md §4.F "unevaluatedProperties"). Suppressed subtrees
// ("not", "contains" per-element probes) are skipped.
func collectEvaluatedPropertyNames(node *result.Node, instanceLocation string) map[string]bool {
	evaluated := map[string]bool{}
	var walk func(n *result.Node)
	walk = func(n *result.Node) {
		if n.Suppressed {
			return
		}
		if n.InstanceLocation == instanceLocation {
			for _, key := range [...]string{"properties", "patternProperties", "additionalProperties", "unevaluatedProperties", "contains"} {
				names, _ := n.Annotations[key].([]string)
				for _, name := range names {
					evaluated[name] = true
				}
			}
		}
		for _, child := range n.Nested {
			walk(child)
		}
	}
	walk(node)
	return evaluated
}

// collectItemsCoverage walks node the same way, gathering the set of
// indices that "items"/"prefixItems"/"additionalItems"/"contains" already
// evaluated (spec.md §12 lists "contains" among the annotations
// "unevaluatedItems" must consume, since contains matches need not be
// contiguous). An "int" annotation means indices 0..v-1 are covered; a
// "bool" true means the whole array is covered from that applicator's
// start onward; a "[]int" (from contains) marks arbitrary, possibly
// non-contiguous indices. allCovered is true if any annotation covered
// the array end-to-end.
func collectItemsCoverage(node *result.Node, instanceLocation string) (covered map[int]bool, allCovered bool) {
	covered = map[int]bool{}
	var walk func(n *result.Node)
	walk = func(n *result.Node) {
		if n.Suppressed {
			return
		}
		if n.InstanceLocation == instanceLocation {
			for _, key := range [...]string{"items", "prefixItems", "additionalItems", "unevaluatedItems"} {
				switch v := n.Annotations[key].(type) {
				case bool:
					if v {
						allCovered = true
					}
				case int:
					for i := 0; i < v; i++ {
						covered[i] = true
					}
				}
			}
			if indices, ok := n.Annotations["contains"].([]int); ok {
				for _, i := range indices {
					covered[i] = true
				}
			}
		}
		for _, child := range n.Nested {
			walk(child)
		}
	}
	walk(node)
	return covered, allCovered
}

// evaluateUnevaluatedProperties validates every instance property not
// covered by any properties/patternProperties/additionalProperties
// annotation anywhere in the current or descendant schemas evaluated
// against this same instance location (spec.md §4.F). Must run last
// among siblings (enforced by keyword.PriorityUnevaluated) so every other
// applicator has already recorded its annotations.
func evaluateUnevaluatedProperties(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	claimed := collectEvaluatedPropertyNames(node, frame.InstanceLocation)

	var covered []string
	var rejected []string
	for _, name := range sortedObjectKeys(obj) {
		if claimed[name] {
			continue
		}
		if sv.Sub.IsBoolean && !sv.Sub.BoolValue {
			rejected = append(rejected, name)
			continue
		}
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, name), obj[name],
			pointerAppend(frame.EvaluationPath, "unevaluatedProperties"), sv.Sub)
		if child.Valid {
			covered = append(covered, name)
		}
		foldValid(node, child)
	}
	if len(rejected) > 0 {
		node.Fail("unevaluatedProperties", "UnevaluatedProperties", map[string]any{"names": rejected})
	}
	if len(covered) > 0 {
		node.Annotate("unevaluatedProperties", covered)
	}
}

// evaluateUnevaluatedItems validates every array element whose index was
// not already covered by an items/prefixItems/additionalItems/contains
// annotation (here or in a descendant, spec.md §4.F). Must run last among
// siblings. Coverage need not be contiguous: a "contains" match deep in
// the array can evaluate an index even when no earlier applicator ran.
func evaluateUnevaluatedItems(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	arr, ok := asArray(frame.Instance)
	if !ok {
		return
	}
	covered, allCovered := collectItemsCoverage(node, frame.InstanceLocation)
	if allCovered {
		return
	}

	if sv.Sub.IsBoolean && !sv.Sub.BoolValue {
		var rejected []int
		for i := range arr {
			if !covered[i] {
				rejected = append(rejected, i)
			}
		}
		if len(rejected) > 0 {
			node.Fail("unevaluatedItems", "UnevaluatedItems", map[string]any{"indices": rejected})
		}
		return
	}

	ran := false
	allAlreadyCovered := true
	for i := range arr {
		if covered[i] {
			continue
		}
		allAlreadyCovered = false
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, indexSegment(i)), arr[i],
			pointerAppend(frame.EvaluationPath, "unevaluatedItems"), sv.Sub)
		foldValid(node, child)
		ran = true
	}
	if ran || allAlreadyCovered {
		node.Annotate("unevaluatedItems", true)
	}
}
