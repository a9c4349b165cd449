package keywords

import (
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// evaluateAllOf fails the parent if any branch fails. It stops at the
// first failing branch only when short-circuiting is allowed (Flag output
// and no annotations required); otherwise every branch still runs so
// their results and annotations are collected (spec.md §4.F, §4.E
// short-circuit).
func evaluateAllOf(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.SchemaListValue)
	frame := ctx.Current()
	for i, sub := range lv.Subs {
		child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "allOf")+"/"+indexSegment(i), sub)
		foldValid(node, child)
		if !node.Valid && ctx.ShortCircuit() {
			return
		}
	}
}

// evaluateAnyOf passes iff at least one branch passes; stops at the first
// success only when short-circuiting is allowed.
func evaluateAnyOf(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.SchemaListValue)
	frame := ctx.Current()
	passed := false
	for i, sub := range lv.Subs {
		child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "anyOf")+"/"+indexSegment(i), sub)
		node.AddChild(child)
		if child.Valid {
			passed = true
			if ctx.ShortCircuit() {
				break
			}
		}
	}
	if !passed {
		node.Fail("anyOf", "AnyOf", nil)
	}
}

// evaluateOneOf requires exactly one branch to pass; always evaluates
// every branch since the exact count matters, never just "at least one".
func evaluateOneOf(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.SchemaListValue)
	frame := ctx.Current()
	count := 0
	for i, sub := range lv.Subs {
		child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "oneOf")+"/"+indexSegment(i), sub)
		node.AddChild(child)
		if child.Valid {
			count++
		}
	}
	if count != 1 {
		node.Fail("oneOf", "OneOf", map[string]any{"count": count})
	}
}

// evaluateNot inverts the nested result and never propagates its
// annotations or errors to the parent (spec.md §4.F "not").
func evaluateNot(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "not"), sv.Sub)
	child.Suppressed = true
	node.AddChild(child)
	if child.Valid {
		node.Fail("not", "Not", nil)
	}
}

// evaluateIf always evaluates, records its outcome for "then"/"else", and
// never itself causes failure (spec.md §4.F, §9 Open Question: the
// source's IfKeyword.GetRequirements was unimplemented — this is the
// target behavior).
func evaluateIf(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "if"), sv.Sub)
	node.AddChild(child)
	node.Annotate("if", child.Valid)
	ctx.SetIfOutcome(child.Valid)
}

// evaluateThen runs only when "if" passed.
func evaluateThen(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	outcome, ok := ctx.IfOutcome()
	if !ok || !outcome {
		return
	}
	evaluateBranch(ctx, resolver, node, "then", kw)
}

// evaluateElse runs only when "if" failed.
func evaluateElse(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	outcome, ok := ctx.IfOutcome()
	if !ok || outcome {
		return
	}
	evaluateBranch(ctx, resolver, node, "else", kw)
}

func evaluateBranch(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, name string, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.SubschemaValue)
	frame := ctx.Current()
	child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, name), sv.Sub)
	foldValid(node, child)
}
