package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// EvaluateSchema runs every active keyword on the context's current frame
// in priority order (spec.md §4.E "evaluate()"), short-circuiting on the
// first failure when the output format is Flag and no ancestor requires
// annotations. The caller is responsible for Push-ing the frame before
// calling and Pop-ing it afterward.
func EvaluateSchema(ctx *evalctx.Context, resolver *refresolve.Resolver) *result.Node {
	frame := ctx.Current()
	node := frame.Node
	sch := frame.Schema

	if sch == nil {
		return node
	}
	if sch.IsBoolean {
		if !sch.BoolValue {
			node.Fail("schema", "BooleanFalse", nil)
		}
		return node
	}

	for _, kw := range sch.Keywords {
		if !node.Valid && ctx.ShortCircuit() {
			break
		}
		evaluateOne(ctx, resolver, node, kw)
		ctx.Logger().KeywordEvaluated(frame.EvaluationPath, frame.InstanceLocation, kw.Name, node.Valid)
	}
	return node
}

// evaluateOne dispatches a single keyword instance to its evaluator.
// $defs/definitions are skipped; pure annotations and
// unrecognized-but-preserved custom keywords fall through to
// evaluateAnnotationLike.
func evaluateOne(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	switch kw.Name {
	case "type":
		evaluateType(ctx, node, kw)
	case "const":
		evaluateConst(ctx, node, kw)
	case "enum":
		evaluateEnum(ctx, node, kw)

	case "multipleOf":
		evaluateMultipleOf(ctx, node, kw)
	case "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum":
		evaluateNumericBound(ctx, node, kw)

	case "minLength", "maxLength":
		evaluateLength(ctx, node, kw)
	case "pattern":
		evaluatePattern(ctx, node, kw)
	case "format":
		evaluateFormat(ctx, node, kw)
	case "contentEncoding":
		evaluateContentEncoding(ctx, node, kw)
	case "contentMediaType":
		evaluateContentMediaType(ctx, node, kw)
	case "contentSchema":
		evaluateContentSchema(ctx, resolver, node, kw)

	case "properties":
		evaluateProperties(ctx, resolver, node, kw)
	case "patternProperties":
		evaluatePatternProperties(ctx, resolver, node, kw)
	case "additionalProperties":
		evaluateAdditionalProperties(ctx, resolver, node, kw)
	case "propertyNames":
		evaluatePropertyNames(ctx, resolver, node, kw)
	case "required":
		evaluateRequired(ctx, node, kw)
	case "minProperties", "maxProperties":
		evaluatePropertiesCount(ctx, node, kw)
	case "dependentRequired":
		evaluateDependentRequired(ctx, node, kw)
	case "dependentSchemas":
		evaluateDependentSchemas(ctx, resolver, node, kw)
	case "dependencies":
		evaluateLegacyDependencies(ctx, resolver, node, kw)

	case "items":
		evaluateItems(ctx, resolver, node, kw)
	case "prefixItems":
		evaluatePrefixItems(ctx, resolver, node, kw)
	case "additionalItems":
		evaluateAdditionalItems(ctx, resolver, node, kw)
	case "minItems", "maxItems":
		evaluateItemsCount(ctx, node, kw)
	case "uniqueItems":
		evaluateUniqueItems(ctx, node, kw)
	case "minContains", "maxContains":
		// No standalone effect: consulted directly by evaluateContains.
	case "contains":
		evaluateContains(ctx, resolver, node, kw)

	case "if":
		evaluateIf(ctx, resolver, node, kw)
	case "then":
		evaluateThen(ctx, resolver, node, kw)
	case "else":
		evaluateElse(ctx, resolver, node, kw)

	case "allOf":
		evaluateAllOf(ctx, resolver, node, kw)
	case "anyOf":
		evaluateAnyOf(ctx, resolver, node, kw)
	case "oneOf":
		evaluateOneOf(ctx, resolver, node, kw)
	case "not":
		evaluateNot(ctx, resolver, node, kw)

	case "unevaluatedProperties":
		evaluateUnevaluatedProperties(ctx, resolver, node, kw)
	case "unevaluatedItems":
		evaluateUnevaluatedItems(ctx, resolver, node, kw)

	case "$ref":
		evaluateRef(ctx, resolver, node, kw)
	case "$dynamicRef":
		evaluateDynamicRef(ctx, resolver, node, kw)
	case "$recursiveRef":
		evaluateRecursiveRef(ctx, resolver, node, kw)

	case "$defs", "definitions":
		// Pure containers for $ref targets; never evaluated themselves.

	default:
		evaluateAnnotationLike(node, kw)
	}
}
