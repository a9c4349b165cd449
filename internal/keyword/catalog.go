// Package keyword is the static keyword catalog (spec.md §4.C): one
// descriptor per keyword name, carrying the drafts it applies to, the
// vocabulary that gates it, its evaluation priority, and whether it is an
// applicator (descends into subschemas). The catalog only describes
// keywords; parsing and evaluation behavior live in internal/compile and
// internal/keywords respectively, grounded on jacoelho-xsd's split between
// a static facet/builtin registry (internal/builtins, internal/facets) and
// its separate parsing/validation packages.
package keyword

import (
	"sort"

	"github.com/amis92/jsonschema/internal/draft"
)

// Priority defines intra-schema keyword ordering. Lower runs first.
type Priority int

const (
	PrioritySchemaID        Priority = 0  // $schema, $id
	PriorityRef             Priority = 10 // $ref, $dynamicRef, $recursiveRef
	PriorityAnnotationInput Priority = 20 // minContains, maxContains
	PriorityPrefixItems     Priority = 38 // prefixItems runs before items so items knows the tail start
	PriorityPropertyApplicators Priority = 40 // properties, patternProperties, items
	PriorityAdditionalApplicators Priority = 45 // additionalProperties, additionalItems consult the above
	PriorityDefault         Priority = 50
	PriorityContains        Priority = 60
	PriorityIf              Priority = 70
	PriorityThenElse        Priority = 80
	PriorityUnevaluated     Priority = 100 // unevaluatedProperties/Items, always last
)

// Descriptor is one catalog entry.
type Descriptor struct {
	Name       string
	Drafts     map[draft.Draft]bool
	Vocabulary draft.Vocabulary // "" means always active when the draft applies
	// VocabularyAlt is a second vocabulary that also enables the keyword
	// when Vocabulary itself isn't declared — "format" is active under
	// either format-annotation or format-assertion (SPEC_FULL.md §6.2).
	VocabularyAlt draft.Vocabulary
	Priority      Priority
	IsApplicator  bool
}

func forDrafts(ds ...draft.Draft) map[draft.Draft]bool {
	m := make(map[draft.Draft]bool, len(ds))
	for _, d := range ds {
		m[d] = true
	}
	return m
}

var allSupported = forDrafts(draft.Draft6, draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext)
var from2019 = forDrafts(draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext)
var from2020 = forDrafts(draft.Draft2020_12, draft.DraftNext)
var upTo7 = forDrafts(draft.Draft6, draft.Draft7)

// Catalog lists every keyword this engine recognizes.
var Catalog = []Descriptor{
	{Name: "$schema", Drafts: allSupported, Priority: PrioritySchemaID},
	{Name: "$id", Drafts: allSupported, Priority: PrioritySchemaID},
	{Name: "$anchor", Drafts: from2019, Vocabulary: draft.VocabCore, Priority: PrioritySchemaID},
	{Name: "$dynamicAnchor", Drafts: from2020, Vocabulary: draft.VocabCore, Priority: PrioritySchemaID},
	{Name: "$recursiveAnchor", Drafts: forDrafts(draft.Draft2019_09), Vocabulary: draft.VocabCore, Priority: PrioritySchemaID},
	{Name: "$defs", Drafts: from2019, Vocabulary: draft.VocabCore, Priority: PrioritySchemaID, IsApplicator: true},
	{Name: "definitions", Drafts: upTo7, Priority: PrioritySchemaID, IsApplicator: true},
	{Name: "$comment", Drafts: allSupported, Priority: PrioritySchemaID},

	{Name: "$ref", Drafts: allSupported, Vocabulary: draft.VocabCore, Priority: PriorityRef, IsApplicator: true},
	{Name: "$dynamicRef", Drafts: from2020, Vocabulary: draft.VocabCore, Priority: PriorityRef, IsApplicator: true},
	{Name: "$recursiveRef", Drafts: forDrafts(draft.Draft2019_09), Vocabulary: draft.VocabCore, Priority: PriorityRef, IsApplicator: true},

	{Name: "type", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "const", Drafts: forDrafts(draft.Draft6, draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext), Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "enum", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},

	{Name: "multipleOf", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "minimum", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "maximum", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "exclusiveMinimum", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "exclusiveMaximum", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},

	{Name: "minLength", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "maxLength", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "pattern", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "format", Drafts: allSupported, Vocabulary: draft.VocabFormatAnnotation, VocabularyAlt: draft.VocabFormatAssertion, Priority: PriorityDefault},
	{Name: "contentEncoding", Drafts: from2019, Vocabulary: draft.VocabContent, Priority: PriorityDefault},
	{Name: "contentMediaType", Drafts: from2019, Vocabulary: draft.VocabContent, Priority: PriorityDefault},
	{Name: "contentSchema", Drafts: from2019, Vocabulary: draft.VocabContent, Priority: PriorityDefault, IsApplicator: true},

	{Name: "properties", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityPropertyApplicators, IsApplicator: true},
	{Name: "patternProperties", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityPropertyApplicators, IsApplicator: true},
	{Name: "additionalProperties", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityAdditionalApplicators, IsApplicator: true},
	{Name: "propertyNames", Drafts: forDrafts(draft.Draft6, draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext), Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},
	{Name: "required", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "minProperties", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "maxProperties", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "dependentRequired", Drafts: from2019, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "dependentSchemas", Drafts: from2019, Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},
	{Name: "dependencies", Drafts: upTo7, Priority: PriorityDefault, IsApplicator: true},

	{Name: "items", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityPropertyApplicators, IsApplicator: true},
	{Name: "prefixItems", Drafts: from2020, Vocabulary: draft.VocabApplicator, Priority: PriorityPrefixItems, IsApplicator: true},
	{Name: "additionalItems", Drafts: forDrafts(draft.Draft6, draft.Draft7, draft.Draft2019_09), Vocabulary: draft.VocabApplicator, Priority: PriorityAdditionalApplicators, IsApplicator: true},
	{Name: "minItems", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "maxItems", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "uniqueItems", Drafts: allSupported, Vocabulary: draft.VocabValidation, Priority: PriorityDefault},
	{Name: "minContains", Drafts: from2019, Vocabulary: draft.VocabValidation, Priority: PriorityAnnotationInput},
	{Name: "maxContains", Drafts: from2019, Vocabulary: draft.VocabValidation, Priority: PriorityAnnotationInput},
	{Name: "contains", Drafts: from2019, Vocabulary: draft.VocabApplicator, Priority: PriorityContains, IsApplicator: true},

	{Name: "if", Drafts: forDrafts(draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext), Vocabulary: draft.VocabApplicator, Priority: PriorityIf, IsApplicator: true},
	{Name: "then", Drafts: forDrafts(draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext), Vocabulary: draft.VocabApplicator, Priority: PriorityThenElse, IsApplicator: true},
	{Name: "else", Drafts: forDrafts(draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext), Vocabulary: draft.VocabApplicator, Priority: PriorityThenElse, IsApplicator: true},

	{Name: "allOf", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},
	{Name: "anyOf", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},
	{Name: "oneOf", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},
	{Name: "not", Drafts: allSupported, Vocabulary: draft.VocabApplicator, Priority: PriorityDefault, IsApplicator: true},

	{Name: "unevaluatedProperties", Drafts: from2019, Vocabulary: draft.VocabUnevaluated, Priority: PriorityUnevaluated, IsApplicator: true},
	{Name: "unevaluatedItems", Drafts: from2019, Vocabulary: draft.VocabUnevaluated, Priority: PriorityUnevaluated, IsApplicator: true},

	{Name: "title", Drafts: allSupported, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "description", Drafts: allSupported, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "default", Drafts: allSupported, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "deprecated", Drafts: from2019, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "readOnly", Drafts: from2019, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "writeOnly", Drafts: from2019, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
	{Name: "examples", Drafts: from2019, Vocabulary: draft.VocabMetaData, Priority: PriorityDefault},
}

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(Catalog))
	for _, d := range Catalog {
		m[d.Name] = d
	}
	return m
}()

// Lookup returns the descriptor for name, if known to the engine.
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// Applicable reports whether name is recognized for d and, when the draft
// has a vocabulary mechanism, whether vocabs enables its vocabulary. A nil
// vocabs (Draft6/Draft7) means "no gating beyond draft version."
func Applicable(name string, d draft.Draft, vocabs map[draft.Vocabulary]bool) bool {
	desc, ok := Lookup(name)
	if !ok {
		return false
	}
	if !desc.Drafts[d] {
		return false
	}
	if desc.Vocabulary == "" || vocabs == nil {
		return true
	}
	if vocabs[desc.Vocabulary] {
		return true
	}
	return desc.VocabularyAlt != "" && vocabs[desc.VocabularyAlt]
}

// SortByPriority orders names by catalog priority ascending, breaking ties
// lexicographically for determinism (spec.md §5 ordering guarantee).
func SortByPriority(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		pi, pj := priorityOf(names[i]), priorityOf(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
}

func priorityOf(name string) Priority {
	if d, ok := Lookup(name); ok {
		return d.Priority
	}
	return PriorityDefault
}
