// Package schema is the compiled schema model (spec.md §3, §4.D): a
// read-only, ownership tree of keyword instances built once by
// internal/compile and evaluated any number of times by internal/keywords
// and internal/evalctx. It holds data only — no evaluation behavior —
// grounded on jacoelho-xsd's internal/runtime package (the compiled,
// immutable runtime schema the validator walks).
package schema

import (
	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/keyword"
)

// Schema is either a boolean schema (always valid/invalid) or a keyed
// schema carrying an ordered list of keyword instances.
type Schema struct {
	IsBoolean bool
	BoolValue bool

	// BaseURI is the resource this node belongs to: the nearest enclosing
	// $id resolved against its own parent base, or the root/default base
	// URI if none (spec.md §3 invariant).
	BaseURI string
	// SchemaPointer is this node's JSON Pointer relative to the nearest
	// enclosing resource root (reset to "" at each new $id boundary).
	SchemaPointer string
	DeclaredDraft  draft.Draft
	Vocabularies   map[draft.Vocabulary]bool
	Anchors        map[string]*Schema
	DynamicAnchors map[string]*Schema
	RecursiveAnchor bool

	Keywords []KeywordInstance
}

// KeywordInstance is one parsed keyword application on a Schema node.
type KeywordInstance struct {
	Name         string
	Priority     keyword.Priority
	IsApplicator bool
	Value        any
}

// Boolean constructs a boolean schema.
func Boolean(v bool) *Schema {
	return &Schema{IsBoolean: true, BoolValue: v}
}

// --- keyword value shapes, one per keyword family ---

type TypeValue struct{ Types []string }

type ConstValue struct{ Value any }

type EnumValue struct{ Values []any }

type NumericBoundValue struct {
	Limit     decimal.Decimal
	Exclusive bool
}

type MultipleOfValue struct{ Divisor decimal.Decimal }

type IntLimitValue struct{ Limit int }

type PatternValue struct {
	Re  *regexp2.Regexp
	Raw string
}

type PropertiesValue struct{ Props map[string]*Schema }

type PatternPropertySchema struct {
	Re  *regexp2.Regexp
	Raw string
	Sub *Schema
}

type PatternPropertiesValue struct{ Patterns []PatternPropertySchema }

type SubschemaValue struct{ Sub *Schema }

type RequiredValue struct{ Names []string }

type DependentRequiredValue struct{ Map map[string][]string }

type DependentSchemasValue struct{ Map map[string]*Schema }

type SchemaListValue struct{ Subs []*Schema }

// LegacyItemsValue models pre-2020-12 "items" which may be either a single
// schema (applies to every element) or an array (applies positionally).
type LegacyItemsValue struct {
	Single *Schema
	Array  []*Schema
}

type RefValue struct {
	Raw      string
	Resolved string // left empty by internal/compile; $ref is resolved at evaluation time
}

type DynamicRefValue struct {
	Raw        string
	Resolved   string
	AnchorName string
}

type RecursiveRefValue struct {
	Resolved string
}

type FormatValue struct{ Name string }

type ContentValue struct {
	Encoding  string
	MediaType string
	Sub       *Schema
}

type BoolFlagValue struct{ Enabled bool }

type AnnotationValue struct{ Value any }

type StringValue struct{ S string }

// LegacyDependenciesValue models Draft6/7's single "dependencies" keyword,
// whose per-property value is either a list of required sibling property
// names or a subschema evaluated against the whole instance.
type LegacyDependenciesValue struct {
	Required map[string][]string
	Schemas  map[string]*Schema
}
