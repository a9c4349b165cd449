package result

// FlagResult is the minimal output shape: a single boolean.
type FlagResult struct {
	Valid bool `json:"valid"`
}

// ListItem is one flat leaf in List output.
type ListItem struct {
	Valid                   bool           `json:"valid"`
	EvaluationPath          string         `json:"evaluationPath"`
	InstanceLocation        string         `json:"instanceLocation"`
	AbsoluteKeywordLocation string         `json:"absoluteKeywordLocation,omitempty"`
	Errors                  map[string]string `json:"errors,omitempty"`
	Annotations             map[string]any `json:"annotations,omitempty"`
}

// ToFlag collapses a tree down to a single boolean.
func (n *Node) ToFlag() FlagResult {
	return FlagResult{Valid: n.Valid}
}

// ToList flattens the tree into one entry per result node (one schema
// location applied to one instance location, inner nodes included),
// depth-first. Entries are not split per keyword. Suppressed subtrees
// ("not", "contains" per-element probes) are left out.
func (n *Node) ToList() []ListItem {
	var out []ListItem
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Suppressed {
			return
		}
		item := ListItem{
			Valid:                   node.Valid,
			EvaluationPath:          node.EvaluationPath,
			InstanceLocation:        node.InstanceLocation,
			AbsoluteKeywordLocation: node.AbsoluteKeywordLocation,
		}
		if len(node.Errors) > 0 {
			item.Errors = make(map[string]string, len(node.Errors))
			for _, e := range node.Errors {
				item.Errors[e.Keyword] = e.Message
			}
		}
		if len(node.Annotations) > 0 {
			item.Annotations = node.Annotations
		}
		out = append(out, item)
		for _, child := range node.Nested {
			walk(child)
		}
	}
	walk(n)
	return out
}

// ToHierarchical returns the tree unchanged: it already is the
// hierarchical shape (spec.md §4.G).
func (n *Node) ToHierarchical() *Node { return n }

// Render produces the shape requested by format. The return value's
// concrete type is FlagResult, []ListItem, or *Node.
func (n *Node) Render(format Format) any {
	switch format {
	case Flag:
		return n.ToFlag()
	case List:
		return n.ToList()
	default:
		return n.ToHierarchical()
	}
}
