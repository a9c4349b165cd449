// Package draft enumerates the supported JSON Schema drafts and the
// vocabulary sets each one declares by default, grounded on
// santhosh-tekuri-jsonschema__draft.go's Draft struct (used here purely as
// reference material — not copied, never a dependency).
package draft

import "strings"

// Draft identifies a JSON Schema specification edition.
type Draft int

const (
	Unspecified Draft = iota
	Draft6
	Draft7
	Draft2019_09
	Draft2020_12
	DraftNext
)

func (d Draft) String() string {
	switch d {
	case Draft6:
		return "draft6"
	case Draft7:
		return "draft7"
	case Draft2019_09:
		return "2019-09"
	case Draft2020_12:
		return "2020-12"
	case DraftNext:
		return "next"
	default:
		return "unspecified"
	}
}

// SchemaURI returns the canonical $schema URI for d, or "" for Unspecified.
func (d Draft) SchemaURI() string {
	switch d {
	case Draft6:
		return "http://json-schema.org/draft-06/schema#"
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft2019_09:
		return "https://json-schema.org/draft/2019-09/schema"
	case Draft2020_12:
		return "https://json-schema.org/draft/2020-12/schema"
	case DraftNext:
		return "https://json-schema.org/draft/next/schema"
	default:
		return ""
	}
}

// FromSchemaURI maps a $schema value to a Draft, tolerating a trailing
// "#" and http/https scheme differences.
func FromSchemaURI(uri string) (Draft, bool) {
	u := strings.TrimSuffix(uri, "#")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "https://")
	switch u {
	case "json-schema.org/draft-06/schema":
		return Draft6, true
	case "json-schema.org/draft-07/schema":
		return Draft7, true
	case "json-schema.org/draft/2019-09/schema":
		return Draft2019_09, true
	case "json-schema.org/draft/2020-12/schema":
		return Draft2020_12, true
	case "json-schema.org/draft/next/schema":
		return DraftNext, true
	default:
		return Unspecified, false
	}
}

// HasVocabularies reports whether d supports the $vocabulary mechanism.
// Draft6/Draft7 gate keywords purely by draft version instead.
func (d Draft) HasVocabularies() bool {
	return d >= Draft2019_09
}

// SupportsRefSiblings reports whether $ref may appear alongside sibling
// keywords (2019-09+) or suppresses them (6/7).
func (d Draft) SupportsRefSiblings() bool {
	return d >= Draft2019_09
}

// SupportsDynamicRef reports whether $dynamicRef/$dynamicAnchor exist
// (2020-12+); 2019-09 instead has $recursiveRef/$recursiveAnchor.
func (d Draft) SupportsDynamicRef() bool {
	return d >= Draft2020_12
}

// SupportsRecursiveRef reports whether $recursiveRef/$recursiveAnchor
// exist (2019-09 only).
func (d Draft) SupportsRecursiveRef() bool {
	return d == Draft2019_09
}

// ContainsMatchesProperties reports whether "contains" may match object
// properties in addition to array elements (DraftNext only, per spec.md
// §4.F).
func (d Draft) ContainsMatchesProperties() bool {
	return d == DraftNext
}

// Vocabulary names a group of keywords gated by a meta-schema.
type Vocabulary string

const (
	VocabCore             Vocabulary = "core"
	VocabApplicator       Vocabulary = "applicator"
	VocabUnevaluated      Vocabulary = "unevaluated"
	VocabValidation       Vocabulary = "validation"
	VocabMetaData         Vocabulary = "meta-data"
	VocabFormatAnnotation Vocabulary = "format-annotation"
	VocabFormatAssertion  Vocabulary = "format-assertion"
	VocabContent          Vocabulary = "content"
)

// DefaultVocabularies returns the vocabulary set active when a schema
// declares no explicit $vocabulary object, per SPEC_FULL.md §6.2.
func DefaultVocabularies(d Draft) map[Vocabulary]bool {
	set := func(vs ...Vocabulary) map[Vocabulary]bool {
		m := make(map[Vocabulary]bool, len(vs))
		for _, v := range vs {
			m[v] = true
		}
		return m
	}
	switch d {
	case Draft2019_09:
		return set(VocabCore, VocabApplicator, VocabValidation, VocabMetaData, VocabFormatAnnotation, VocabContent)
	case Draft2020_12, DraftNext:
		return set(VocabCore, VocabApplicator, VocabUnevaluated, VocabValidation, VocabMetaData, VocabFormatAnnotation, VocabContent)
	default:
		// Draft6/Draft7 and Unspecified have no vocabulary mechanism: every
		// keyword applicable to the draft is always active.
		return nil
	}
}
