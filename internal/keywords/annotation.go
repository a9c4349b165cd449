package keywords

import (
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// evaluateAnnotationLike handles every keyword that carries no validation
// behavior of its own: the metadata vocabulary ("title", "description",
// "default", "deprecated", "readOnly", "writeOnly", "examples") and any
// keyword the catalog did not recognize at all, preserved verbatim
// as an annotation (spec.md §4.F "Annotation-only keywords", §6.1
// "Custom/unknown keywords"). Never fails the schema.
func evaluateAnnotationLike(node *result.Node, kw schema.KeywordInstance) {
	av, ok := kw.Value.(schema.AnnotationValue)
	if !ok {
		return
	}
	node.Annotate(kw.Name, av.Value)
}
