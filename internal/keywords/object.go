package keywords

import (
	"sort"

	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

func asObject(instance any) (map[string]any, bool) {
	m, ok := instance.(map[string]any)
	return m, ok
}

func sortedObjectKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// evaluateProperties descends into every instance property that has a
// matching "properties" entry, in sorted-name order for determinism
// (spec.md §5), and annotates the set of names it evaluated (spec.md §4.F
// "properties... annotates the set of names it evaluated").
func evaluateProperties(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	pv := kw.Value.(schema.PropertiesValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	var evaluated []string
	for _, name := range sortedObjectKeys(obj) {
		sub, ok := pv.Props[name]
		if !ok {
			continue
		}
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, name), obj[name],
			pointerAppend(frame.EvaluationPath, "properties")+"/"+escapeSegment(name), sub)
		foldValid(node, child)
		evaluated = append(evaluated, name)
	}
	node.Annotate("properties", evaluated)
}

// evaluatePatternProperties descends into every instance property matched
// by at least one pattern, annotating the union of matched names.
func evaluatePatternProperties(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	ppv := kw.Value.(schema.PatternPropertiesValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	seen := map[string]bool{}
	for _, name := range sortedObjectKeys(obj) {
		for _, p := range ppv.Patterns {
			matched, err := p.Re.MatchString(name)
			if err != nil || !matched {
				continue
			}
			child := pushChildInstance(ctx, resolver,
				pointerAppend(frame.InstanceLocation, name), obj[name],
				pointerAppend(frame.EvaluationPath, "patternProperties")+"/"+escapeSegment(p.Raw), p.Sub)
			foldValid(node, child)
			seen[name] = true
		}
	}
	var evaluated []string
	for name := range seen {
		evaluated = append(evaluated, name)
	}
	sort.Strings(evaluated)
	node.Annotate("patternProperties", evaluated)
}

// evaluateAdditionalProperties validates every instance property not
// already claimed by "properties" (exact match) or "patternProperties"
// (any matching pattern) against the additionalProperties subschema,
// consulting those siblings' literal arguments directly rather than
// runtime annotations (spec.md §4.F).
func evaluateAdditionalProperties(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	claimed := propertiesClaimedBySiblings(frame.Schema)

	var evaluated []string
	var rejected []string
	for _, name := range sortedObjectKeys(obj) {
		if claimed[name] || claimedByPattern(frame.Schema, name) {
			continue
		}
		if sv.Sub.IsBoolean && !sv.Sub.BoolValue {
			rejected = append(rejected, name)
			continue
		}
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, name), obj[name],
			pointerAppend(frame.EvaluationPath, "additionalProperties"), sv.Sub)
		foldValid(node, child)
		evaluated = append(evaluated, name)
	}
	if len(rejected) > 0 {
		node.Fail("additionalProperties", "AdditionalProperties", map[string]any{"names": rejected})
	}
	node.Annotate("additionalProperties", append(evaluated, rejected...))
}

// propertiesClaimedBySiblings returns the set of property names declared
// by a "properties" sibling on the same schema node (pattern matches are
// checked separately by claimedByPattern), without needing to evaluate
// anything — a name is claimed purely by being declared, independent of
// whether the nested schema happens to validate.
func propertiesClaimedBySiblings(sch *schema.Schema) map[string]bool {
	claimed := map[string]bool{}
	if v, ok := siblingValue(sch, "properties"); ok {
		for name := range v.(schema.PropertiesValue).Props {
			claimed[name] = true
		}
	}
	return claimed
}

// claimedByPattern reports whether name matches any patternProperties
// regex on sch; used by evaluateAdditionalProperties via a closure-free
// helper to keep the hot loop allocation-free.
func claimedByPattern(sch *schema.Schema, name string) bool {
	v, ok := siblingValue(sch, "patternProperties")
	if !ok {
		return false
	}
	for _, p := range v.(schema.PatternPropertiesValue).Patterns {
		if matched, err := p.Re.MatchString(name); err == nil && matched {
			return true
		}
	}
	return false
}

// evaluatePropertyNames validates every instance property *name* (as a
// string instance) against a subschema (spec.md §6.1 supplemented
// keyword).
func evaluatePropertyNames(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	for _, name := range sortedObjectKeys(obj) {
		child := pushChildInstance(ctx, resolver,
			pointerAppend(frame.InstanceLocation, name), name,
			pointerAppend(frame.EvaluationPath, "propertyNames"), sv.Sub)
		foldValid(node, child)
	}
}

// evaluateRequired fails listing every missing required property name.
func evaluateRequired(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	rv := kw.Value.(schema.RequiredValue)
	obj, ok := asObject(ctx.Current().Instance)
	if !ok {
		return
	}
	var missing []string
	for _, name := range rv.Names {
		if _, ok := obj[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		node.Fail("required", "Required", map[string]any{"missing": missing})
	}
}

// evaluatePropertiesCount implements minProperties/maxProperties.
func evaluatePropertiesCount(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.IntLimitValue)
	obj, ok := asObject(ctx.Current().Instance)
	if !ok {
		return
	}
	n := len(obj)
	if kw.Name == "minProperties" && n < lv.Limit {
		node.Fail("minProperties", "MinProperties", map[string]any{"received": n, "limit": lv.Limit})
		return
	}
	if kw.Name == "maxProperties" && n > lv.Limit {
		node.Fail("maxProperties", "MaxProperties", map[string]any{"received": n, "limit": lv.Limit})
	}
}

// evaluateDependentRequired triggers only when the named property exists
// on the instance (spec.md §4.F).
func evaluateDependentRequired(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	dv := kw.Value.(schema.DependentRequiredValue)
	obj, ok := asObject(ctx.Current().Instance)
	if !ok {
		return
	}
	for _, trigger := range sortedMapKeys(dv.Map) {
		if _, present := obj[trigger]; !present {
			continue
		}
		var missing []string
		for _, name := range dv.Map[trigger] {
			if _, ok := obj[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			node.Fail("dependentRequired", "DependentRequired", map[string]any{"property": trigger, "missing": missing})
		}
	}
}

// evaluateDependentSchemas evaluates the full subschema against the whole
// instance when the named property is present (spec.md §4.F).
func evaluateDependentSchemas(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	dv := kw.Value.(schema.DependentSchemasValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	for _, trigger := range sortedSchemaMapKeys(dv.Map) {
		if _, present := obj[trigger]; !present {
			continue
		}
		child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "dependentSchemas")+"/"+escapeSegment(trigger), dv.Map[trigger])
		foldValid(node, child)
	}
}

// evaluateLegacyDependencies implements Draft6/7's single "dependencies"
// keyword: per-property value is either a required-sibling-names list
// (dependentRequired semantics) or a subschema (dependentSchemas
// semantics).
func evaluateLegacyDependencies(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.LegacyDependenciesValue)
	frame := ctx.Current()
	obj, ok := asObject(frame.Instance)
	if !ok {
		return
	}
	for _, trigger := range sortedStringSliceMapKeys(lv.Required) {
		if _, present := obj[trigger]; !present {
			continue
		}
		var missing []string
		for _, name := range lv.Required[trigger] {
			if _, ok := obj[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			node.Fail("dependencies", "DependentRequired", map[string]any{"property": trigger, "missing": missing})
		}
	}
	for _, trigger := range sortedSchemaMapKeys(lv.Schemas) {
		if _, present := obj[trigger]; !present {
			continue
		}
		child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "dependencies")+"/"+escapeSegment(trigger), lv.Schemas[trigger])
		foldValid(node, child)
	}
}

func sortedMapKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringSliceMapKeys(m map[string][]string) []string { return sortedMapKeys(m) }

func sortedSchemaMapKeys(m map[string]*schema.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
