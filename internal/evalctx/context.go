// Package evalctx implements the Evaluation Context (spec.md §4.E): the
// push/pop frame stack and dynamic-scope URI stack that
// internal/keywords.EvaluateSchema drives. Grounded on jacoelho-xsd's
// internal/validator session frame stack (session_frame_types.go,
// session_lifecycle.go) and its parallel identity-constraint scope stack
// (session_identity_scope.go) — the same shape this package needs for
// $dynamicRef's dynamic scope.
package evalctx

import (
	"fmt"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
	"github.com/amis92/jsonschema/internal/telemetry"
)

// Options configures one evaluation call (spec.md §6).
type Options struct {
	Format                  result.Format
	RequireFormatValidation bool
	ProcessCustomKeywords   bool
}

// Frame is one stack entry: a schema location evaluated against an
// instance location.
type Frame struct {
	InstanceLocation   string
	Instance           any
	EvaluationPath     string
	Schema             *schema.Schema
	Node               *result.Node
	Vocabularies       map[draft.Vocabulary]bool
	Draft               draft.Draft
	AnnotationRequired bool
	// IfResult caches this frame's "if" keyword outcome so the sibling
	// "then"/"else" keywords (evaluated later, by priority) know which
	// branch to take without re-evaluating "if".
	IfResult *bool
}

// Context is the per-evaluation-call state; not safe for concurrent use,
// and discarded at the end of the call (spec.md §5).
type Context struct {
	frames       []*Frame
	dynamicScope []string
	registry     *registry.Registry
	opts         Options
	logger       *telemetry.Logger
	onStack      map[string]int
}

// New creates a Context for one Evaluate call.
func New(reg *registry.Registry, opts Options, logger *telemetry.Logger) *Context {
	if logger == nil {
		logger = telemetry.Nop()
	}
	return &Context{registry: reg, opts: opts, logger: logger, onStack: map[string]int{}}
}

// Registry returns the schema registry used for $ref resolution.
func (c *Context) Registry() *registry.Registry { return c.registry }

// Logger returns the structured trace logger.
func (c *Context) Logger() *telemetry.Logger { return c.logger }

// Options returns the evaluation options.
func (c *Context) Options() Options { return c.opts }

// Current returns the top frame, or nil if the stack is empty.
func (c *Context) Current() *Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// schemaRequiresAnnotations reports whether sch itself carries an
// unevaluated-* keyword (spec.md §4.E short-circuit gate).
func schemaRequiresAnnotations(sch *schema.Schema) bool {
	if sch == nil || sch.IsBoolean {
		return false
	}
	for _, kw := range sch.Keywords {
		if kw.Name == "unevaluatedProperties" || kw.Name == "unevaluatedItems" {
			return true
		}
	}
	return false
}

// PushInstance descends into a child instance and subschema (used by
// properties, items, contains, ...).
func (c *Context) PushInstance(instanceLocation string, instance any, evaluationPath string, sch *schema.Schema) *result.Node {
	return c.push(instanceLocation, instance, evaluationPath, sch)
}

// PushSchemaOnly descends into a subschema keeping the current instance
// (used by allOf, anyOf, oneOf, if/then/else, not).
func (c *Context) PushSchemaOnly(evaluationPath string, sch *schema.Schema) *result.Node {
	cur := c.Current()
	var loc string
	var inst any
	if cur != nil {
		loc = cur.InstanceLocation
		inst = cur.Instance
	}
	return c.push(loc, inst, evaluationPath, sch)
}

func (c *Context) push(instanceLocation string, instance any, evaluationPath string, sch *schema.Schema) *result.Node {
	node := result.NewNode(evaluationPath, instanceLocation, evaluationPath)

	var vocabs map[draft.Vocabulary]bool
	var d draft.Draft
	parentReq := false
	if cur := c.Current(); cur != nil {
		vocabs, d, parentReq = cur.Vocabularies, cur.Draft, cur.AnnotationRequired
	}
	if sch != nil && !sch.IsBoolean {
		if sch.DeclaredDraft != draft.Unspecified {
			d = sch.DeclaredDraft
		}
		if sch.Vocabularies != nil {
			vocabs = sch.Vocabularies
		}
	}

	frame := &Frame{
		InstanceLocation:   instanceLocation,
		Instance:           instance,
		EvaluationPath:     evaluationPath,
		Schema:             sch,
		Node:               node,
		Vocabularies:       vocabs,
		Draft:              d,
		AnnotationRequired: parentReq || schemaRequiresAnnotations(sch),
	}
	c.frames = append(c.frames, frame)
	return node
}

// Pop returns to the previous frame and returns the popped node so the
// caller can attach it to the parent's result.
func (c *Context) Pop() *result.Node {
	if len(c.frames) == 0 {
		return nil
	}
	n := len(c.frames) - 1
	f := c.frames[n]
	c.frames = c.frames[:n]
	return f.Node
}

// EnterDynamicScope records base as having been entered via a reference,
// returning an exit function that must be called (typically deferred) when
// leaving that reference's subtree.
func (c *Context) EnterDynamicScope(base string) func() {
	c.dynamicScope = append(c.dynamicScope, base)
	return func() {
		if len(c.dynamicScope) > 0 {
			c.dynamicScope = c.dynamicScope[:len(c.dynamicScope)-1]
		}
	}
}

// DynamicScope returns the stack of base URIs entered via references,
// outermost first.
func (c *Context) DynamicScope() []string { return c.dynamicScope }

// ShortCircuit reports whether evaluation may stop at the first failure:
// Flag output and no ancestor (or self) requires annotations.
func (c *Context) ShortCircuit() bool {
	if c.opts.Format != result.Flag {
		return false
	}
	cur := c.Current()
	return cur == nil || !cur.AnnotationRequired
}

// CheckCycle registers (schemaLocation, instanceLocation) as active on the
// stack, reporting true if the same pair is already active — an infinite
// $ref loop that consumes no instance (spec.md §9).
func (c *Context) CheckCycle(schemaLocation, instanceLocation string) bool {
	key := schemaLocation + "\x00" + instanceLocation
	if c.onStack[key] > 0 {
		return true
	}
	c.onStack[key]++
	return false
}

// ReleaseCycleGuard undoes a prior CheckCycle registration.
func (c *Context) ReleaseCycleGuard(schemaLocation, instanceLocation string) {
	key := schemaLocation + "\x00" + instanceLocation
	if c.onStack[key] > 0 {
		c.onStack[key]--
	}
}

// SetIfOutcome records the current frame's "if" keyword result for the
// sibling "then"/"else" keywords to consult (spec.md §4.F).
func (c *Context) SetIfOutcome(valid bool) {
	if cur := c.Current(); cur != nil {
		v := valid
		cur.IfResult = &v
	}
}

// IfOutcome returns the current frame's recorded "if" outcome, if any.
func (c *Context) IfOutcome() (bool, bool) {
	cur := c.Current()
	if cur == nil || cur.IfResult == nil {
		return false, false
	}
	return *cur.IfResult, true
}

// FrameDepth exposes the current stack depth, mostly for tests.
func (c *Context) FrameDepth() int { return len(c.frames) }

// String is a debug helper for a frame.
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{path=%s instance=%s}", f.EvaluationPath, f.InstanceLocation)
}
