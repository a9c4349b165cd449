package keywords

import (
	"fmt"

	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// followRef descends into an already-resolved reference target, guarding
// against runtime cycles (spec.md §9: the same (schema_location,
// instance_location) pair reappearing with the instance unchanged is a
// fatal cycle, not a silent infinite loop) and entering the target
// resource's base URI onto the dynamic scope stack for nested
// $dynamicRef/$recursiveRef resolution (spec.md §3 "Dynamic scope").
func followRef(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, keywordName string, target *schema.Schema) {
	frame := ctx.Current()
	schemaLoc := fmt.Sprintf("%p", target)
	if ctx.CheckCycle(schemaLoc, frame.InstanceLocation) {
		node.Fail(keywordName, "RefCycle", map[string]any{"location": frame.EvaluationPath})
		return
	}
	defer ctx.ReleaseCycleGuard(schemaLoc, frame.InstanceLocation)

	if target != nil && !target.IsBoolean && target.BaseURI != "" {
		exit := ctx.EnterDynamicScope(target.BaseURI)
		defer exit()
	}

	childPath := pointerAppend(frame.EvaluationPath, keywordName)
	child := pushChildInstance(ctx, resolver, frame.InstanceLocation, frame.Instance, childPath, target)
	foldValid(node, child)
}

func evaluateRef(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	rv := kw.Value.(schema.RefValue)
	frame := ctx.Current()
	target, err := resolver.ResolveStatic(frame.Schema.BaseURI, rv.Raw)
	if err != nil {
		node.Fail("$ref", "RefNotFound", map[string]any{"ref": rv.Raw})
		return
	}
	followRef(ctx, resolver, node, "$ref", target)
}

func evaluateDynamicRef(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	dv := kw.Value.(schema.DynamicRefValue)
	frame := ctx.Current()
	target, err := resolver.ResolveDynamic(ctx, frame.Schema.BaseURI, dv.Raw, dv.AnchorName)
	if err != nil {
		node.Fail("$dynamicRef", "RefNotFound", map[string]any{"ref": dv.Raw})
		return
	}
	followRef(ctx, resolver, node, "$dynamicRef", target)
}

func evaluateRecursiveRef(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	frame := ctx.Current()
	raw := "#"
	target, err := resolver.ResolveRecursive(ctx, frame.Schema.BaseURI, raw)
	if err != nil {
		node.Fail("$recursiveRef", "RefNotFound", map[string]any{"ref": raw})
		return
	}
	followRef(ctx, resolver, node, "$recursiveRef", target)
}
