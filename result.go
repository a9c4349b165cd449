package jsonschema

import "github.com/amis92/jsonschema/internal/result"

// Result is the outcome of one Evaluate call (spec.md §4.G, §6 "Output
// result"). The top level always carries Valid(); Render returns the
// shape requested via WithOutputFormat.
type Result struct {
	node   *result.Node
	format Format
}

// Valid reports whether the instance validated against the schema.
func (r *Result) Valid() bool { return r.node != nil && r.node.Valid }

// FlagResult is the minimal output shape: a single boolean.
type FlagResult struct {
	Valid bool `json:"valid"`
}

// ListItem is one flat entry in List output: one entry per result node
// (one schema location applied to one instance location, inner nodes
// included), in depth-first order. Entries are not split per keyword.
type ListItem struct {
	Valid                   bool              `json:"valid"`
	EvaluationPath          string            `json:"evaluationPath"`
	InstanceLocation        string            `json:"instanceLocation"`
	AbsoluteKeywordLocation string            `json:"absoluteKeywordLocation,omitempty"`
	Errors                  map[string]string `json:"errors,omitempty"`
	Annotations             map[string]any    `json:"annotations,omitempty"`
}

// Error is one keyword-level validation failure attached to a Node.
type Error struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// Node is one location in the Hierarchical result tree: the outcome of
// evaluating one schema location against one instance location.
type Node struct {
	Valid                   bool           `json:"valid"`
	EvaluationPath          string         `json:"evaluationPath"`
	InstanceLocation        string         `json:"instanceLocation"`
	AbsoluteKeywordLocation string         `json:"absoluteKeywordLocation,omitempty"`
	Errors                  []Error        `json:"errors,omitempty"`
	Annotations             map[string]any `json:"annotations,omitempty"`
	Nested                  []*Node        `json:"nested,omitempty"`
}

// Flag collapses the result down to a single boolean.
func (r *Result) Flag() FlagResult {
	fr := r.node.ToFlag()
	return FlagResult{Valid: fr.Valid}
}

// List flattens the result tree into one entry per location.
func (r *Result) List() []ListItem {
	items := r.node.ToList()
	out := make([]ListItem, len(items))
	for i, it := range items {
		out[i] = ListItem{
			Valid:                   it.Valid,
			EvaluationPath:          it.EvaluationPath,
			InstanceLocation:        it.InstanceLocation,
			AbsoluteKeywordLocation: it.AbsoluteKeywordLocation,
			Errors:                  it.Errors,
			Annotations:             it.Annotations,
		}
	}
	return out
}

// Hierarchical returns the full result tree.
func (r *Result) Hierarchical() *Node {
	return convertNode(r.node)
}

// Render returns the shape selected by WithOutputFormat when this Result
// was produced: FlagResult, []ListItem, or *Node.
func (r *Result) Render() any {
	switch r.format {
	case result.List:
		return r.List()
	case result.Hierarchical:
		return r.Hierarchical()
	default:
		return r.Flag()
	}
}

func convertNode(n *result.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Valid:                   n.Valid,
		EvaluationPath:          n.EvaluationPath,
		InstanceLocation:        n.InstanceLocation,
		AbsoluteKeywordLocation: n.AbsoluteKeywordLocation,
		Annotations:             n.Annotations,
	}
	for _, e := range n.Errors {
		out.Errors = append(out.Errors, Error{Keyword: e.Keyword, Message: e.Message})
	}
	for _, c := range n.Nested {
		out.Nested = append(out.Nested, convertNode(c))
	}
	return out
}
