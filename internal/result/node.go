// Package result implements the Result Tree (spec.md §4.G): a tree of
// per-location evaluation outcomes with three serialization shapes (Flag,
// List, Hierarchical), grounded on jacoelho-xsd's errors.Validation /
// errors.ValidationList (code + message + path) extended with the
// [[token]] templating and annotation/nested-result fields spec.md §4.G
// and §6 require.
package result

import (
	"fmt"
	"strings"
)

// Format selects the output shape requested by the caller (spec.md §6).
type Format int

const (
	Flag Format = iota
	List
	Hierarchical
)

// Error is one keyword-level validation failure.
type Error struct {
	Keyword string
	Message string
	Tokens  map[string]any
}

// Node is one location in the evaluation tree: the outcome of evaluating
// one schema location against one instance location.
type Node struct {
	EvaluationPath         string
	InstanceLocation       string
	AbsoluteKeywordLocation string
	Valid                   bool
	Errors                  []Error
	Annotations             map[string]any
	Nested                  []*Node
	// Suppressed marks a subtree whose errors/annotations must never
	// bubble into an ancestor's unevaluated-* collection or rendered
	// error list (spec.md §4.F "not": "never propagates nested
	// annotations or errors to the result"; also used for "contains"'s
	// per-element probes, whose individual pass/fail never surfaces).
	Suppressed bool
}

// NewNode creates an empty, valid node at the given locations.
func NewNode(evalPath, instanceLocation, absKeywordLocation string) *Node {
	return &Node{
		EvaluationPath:          evalPath,
		InstanceLocation:        instanceLocation,
		AbsoluteKeywordLocation: absKeywordLocation,
		Valid:                   true,
		Annotations:             map[string]any{},
	}
}

// Fail records a keyword failure and marks the node invalid. templateSymbol
// names an entry in the template table (see RenderTemplate); it is
// rendered against tokens exactly once here, so callers pass the symbol
// itself rather than a pre-rendered string.
func (n *Node) Fail(keyword, templateSymbol string, tokens map[string]any) {
	n.Valid = false
	n.Errors = append(n.Errors, Error{Keyword: keyword, Message: RenderTemplate(templateSymbol, tokens), Tokens: tokens})
}

// Annotate records an annotation value under name, overwriting any prior
// value (last write wins within one node, matching a single keyword
// recording once per location).
func (n *Node) Annotate(name string, value any) {
	if n.Annotations == nil {
		n.Annotations = map[string]any{}
	}
	n.Annotations[name] = value
}

// AddChild attaches a nested result without touching this node's
// validity: the caller decides whether invalidity should propagate (some
// applicators like "not" intentionally do not propagate).
func (n *Node) AddChild(child *Node) {
	n.Nested = append(n.Nested, child)
}

// Render substitutes [[token]] placeholders in template using tokens,
// stringifying each value with fmt (spec.md §6 "Error message templates").
func Render(template string, tokens map[string]any) string {
	out := template
	for k, v := range tokens {
		out = strings.ReplaceAll(out, "[["+k+"]]", fmt.Sprint(v))
	}
	return out
}
