package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/jsonvalue"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

func asArray(instance any) ([]any, bool) {
	a, ok := instance.([]any)
	return a, ok
}

// evaluatePrefixItems validates the positional leading schemas (2020-12+)
// and annotates the count of indices it covered, or true if that count
// reaches the end of the array (spec.md §4.F "items/prefixItems").
func evaluatePrefixItems(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.SchemaListValue)
	frame := ctx.Current()
	arr, ok := asArray(frame.Instance)
	if !ok {
		return
	}
	n := len(lv.Subs)
	if n > len(arr) {
		n = len(arr)
	}
	for i := 0; i < n; i++ {
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, indexSegment(i)), arr[i],
			pointerAppend(frame.EvaluationPath, "prefixItems")+"/"+indexSegment(i), lv.Subs[i])
		foldValid(node, child)
	}
	if n == 0 {
		return
	}
	if n == len(arr) {
		node.Annotate("prefixItems", true)
		return
	}
	node.Annotate("prefixItems", n)
}

// evaluateItems implements both the legacy positional-array form
// (pre-2020-12, shares additionalItems for its tail) and the schema form,
// which applies to every element or, when a "prefixItems" sibling is
// present, only to the tail beyond it (spec.md §4.F).
func evaluateItems(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	iv := kw.Value.(schema.LegacyItemsValue)
	frame := ctx.Current()
	arr, ok := asArray(frame.Instance)
	if !ok {
		return
	}

	if iv.Array != nil {
		n := len(iv.Array)
		if n > len(arr) {
			n = len(arr)
		}
		for i := 0; i < n; i++ {
			child := pushChildInstance(ctx, resolver,
				pointerAppend(frame.InstanceLocation, indexSegment(i)), arr[i],
				pointerAppend(frame.EvaluationPath, "items")+"/"+indexSegment(i), iv.Array[i])
			foldValid(node, child)
		}
		if n > 0 {
			if n == len(arr) {
				node.Annotate("items", true)
			} else {
				node.Annotate("items", n)
			}
		}
		return
	}

	start := 0
	if pv, ok := siblingValue(frame.Schema, "prefixItems"); ok {
		start = len(pv.(schema.SchemaListValue).Subs)
		if start > len(arr) {
			start = len(arr)
		}
	}
	ran := false
	for i := start; i < len(arr); i++ {
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, indexSegment(i)), arr[i],
			pointerAppend(frame.EvaluationPath, "items"), iv.Single)
		foldValid(node, child)
		ran = true
	}
	if ran || start == len(arr) {
		node.Annotate("items", true)
	}
}

// evaluateAdditionalItems validates the positional tail beyond a legacy
// array-form "items" (pre-2020-12 only; 2020-12+ uses the schema-form
// "items" for the tail instead).
func evaluateAdditionalItems(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	arr, ok := asArray(frame.Instance)
	if !ok {
		return
	}
	start := 0
	if iv, ok := siblingValue(frame.Schema, "items"); ok {
		if legacy, ok := iv.(schema.LegacyItemsValue); ok && legacy.Array != nil {
			start = len(legacy.Array)
		}
	}
	if start >= len(arr) {
		return
	}
	if sv.Sub.IsBoolean && !sv.Sub.BoolValue {
		node.Fail("additionalItems", "AdditionalItems", map[string]any{"limit": start})
		return
	}
	for i := start; i < len(arr); i++ {
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, indexSegment(i)), arr[i],
			pointerAppend(frame.EvaluationPath, "additionalItems"), sv.Sub)
		foldValid(node, child)
	}
	node.Annotate("additionalItems", true)
}

// evaluateItemsCount implements minItems/maxItems.
func evaluateItemsCount(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.IntLimitValue)
	arr, ok := asArray(ctx.Current().Instance)
	if !ok {
		return
	}
	n := len(arr)
	if kw.Name == "minItems" && n < lv.Limit {
		node.Fail("minItems", "MinItems", map[string]any{"received": n, "limit": lv.Limit})
		return
	}
	if kw.Name == "maxItems" && n > lv.Limit {
		node.Fail("maxItems", "MaxItems", map[string]any{"received": n, "limit": lv.Limit})
	}
}

// evaluateUniqueItems flags the index pair of the first duplicate found,
// bucketing by hash before the O(n^2) structural-equality fallback
// (spec.md §4.A HashEquivalence).
func evaluateUniqueItems(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	bv := kw.Value.(schema.BoolFlagValue)
	if !bv.Enabled {
		return
	}
	arr, ok := asArray(ctx.Current().Instance)
	if !ok {
		return
	}
	buckets := map[uint64][]int{}
	for i, v := range arr {
		h := jsonvalue.HashEquivalence(v)
		for _, j := range buckets[h] {
			if jsonvalue.Equivalent(arr[i], arr[j]) {
				node.Fail("uniqueItems", "UniqueItems", map[string]any{"indices": []int{j, i}})
				return
			}
		}
		buckets[h] = append(buckets[h], i)
	}
}

// evaluateContains counts matching elements and passes iff minContains <=
// count <= maxContains (default minContains=1, no maxContains limit),
// annotating the matching indices. minContains=0 makes an otherwise
// all-mismatching array pass (spec.md §4.F). In DraftNext, "contains" may
// also be applied to an object instance, matching against its property
// values instead of array elements (spec.md §4.F, ContainsMatchesProperties).
func evaluateContains(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()

	minCount := 1
	maxCount := -1
	if v, ok := siblingValue(frame.Schema, "minContains"); ok {
		minCount = v.(schema.IntLimitValue).Limit
	}
	if v, ok := siblingValue(frame.Schema, "maxContains"); ok {
		maxCount = v.(schema.IntLimitValue).Limit
	}

	if obj, ok := asObject(frame.Instance); ok && frame.Draft.ContainsMatchesProperties() {
		var matched []string
		for _, name := range sortedObjectKeys(obj) {
			child := pushChildInstance(ctx, resolver,
				pointerAppend(frame.InstanceLocation, name), obj[name],
				pointerAppend(frame.EvaluationPath, "contains"), sv.Sub)
			child.Suppressed = true
			node.AddChild(child)
			if child.Valid {
				matched = append(matched, name)
			}
		}
		failContainsCount(node, len(matched), minCount, maxCount)
		node.Annotate("contains", matched)
		return
	}

	arr, ok := asArray(frame.Instance)
	if !ok {
		return
	}

	var matched []int
	for i, v := range arr {
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, indexSegment(i)), v,
			pointerAppend(frame.EvaluationPath, "contains"), sv.Sub)
		child.Suppressed = true // contains never leaks per-element errors, only the aggregate
		node.AddChild(child)
		if child.Valid {
			matched = append(matched, i)
		}
	}

	failContainsCount(node, len(matched), minCount, maxCount)
	node.Annotate("contains", matched)
}

func failContainsCount(node *result.Node, count, minCount, maxCount int) {
	if count < minCount {
		node.Fail("contains", "ContainsTooFew", map[string]any{"count": count, "limit": minCount})
	} else if maxCount >= 0 && count > maxCount {
		node.Fail("contains", "ContainsTooMany", map[string]any{"count": count, "limit": maxCount})
	}
}
