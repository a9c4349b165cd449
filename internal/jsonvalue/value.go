// Package jsonvalue implements the JSON value abstraction the evaluation
// engine is built on: a tagged union over the seven JSON kinds, structural
// equivalence, and a stable hash used for uniqueItems duplicate detection.
//
// Values are the dynamic types produced by decoding with
// json.Decoder.UseNumber: nil, bool, string, json.Number, []any and
// map[string]any. Numbers may also be float64, int or int64 (as in
// documents built directly in Go); any other type classifies as
// KindInvalid.
package jsonvalue

import (
	"encoding/json"
	"math/big"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Kind classifies a decoded JSON value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindString
	KindNumber
	KindInteger
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// ClassifyOf returns the value's primitive kind. "integer" is never
// returned here: it is a derived kind (see IsInteger) layered on top of
// "number" so that keyword implementations checking for "number" still
// match integer-valued instances.
func ClassifyOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number, float64, int, int64:
		return KindNumber
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// MatchesType reports whether v satisfies the JSON Schema primitive type
// name "wanted" ("integer" additionally accepts zero-fractional numbers).
func MatchesType(v any, wanted string) bool {
	k := ClassifyOf(v)
	switch wanted {
	case "integer":
		return k == KindNumber && IsInteger(v)
	case "number":
		return k == KindNumber
	case "string":
		return k == KindString
	case "boolean":
		return k == KindBoolean
	case "null":
		return k == KindNull
	case "array":
		return k == KindArray
	case "object":
		return k == KindObject
	default:
		return false
	}
}

// AsNumber decodes v as an arbitrary-precision decimal. ok is false if v is
// not a JSON number.
func AsNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}

// IsInteger reports whether a JSON number value has a zero fractional part.
// 1, 1.0 and -0 are all integers; 1.5 is not.
func IsInteger(v any) bool {
	d, ok := AsNumber(v)
	if !ok {
		return false
	}
	return d.Truncate(0).Equal(d)
}

// Equivalent implements JSON Schema's structural equality: objects compare
// order-insensitively by key/value, arrays compare order-sensitively,
// numbers compare by mathematical value regardless of lexical form (1 and
// 1.0 are equivalent), everything else compares by kind and value.
func Equivalent(a, b any) bool {
	ka, kb := ClassifyOf(a), ClassifyOf(b)
	if ka == KindNumber && kb == KindNumber {
		na, ok1 := AsNumber(a)
		nb, ok2 := AsNumber(b)
		return ok1 && ok2 && na.Equal(nb)
	}
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBoolean:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindArray:
		aa, bb := a.([]any), b.([]any)
		if len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if !Equivalent(aa[i], bb[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ao, bo := a.(map[string]any), b.(map[string]any)
		if len(ao) != len(bo) {
			return false
		}
		for k, av := range ao {
			bv, ok := bo[k]
			if !ok || !Equivalent(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// HashEquivalence returns a stable hash such that Equivalent(a, b) implies
// HashEquivalence(a) == HashEquivalence(b). Used to bucket candidates before
// the O(n^2) Equivalent fallback in uniqueItems.
func HashEquivalence(v any) uint64 {
	h := xxhash.New()
	writeCanonical(h, v)
	return h.Sum64()
}

func writeCanonical(h *xxhash.Digest, v any) {
	switch k := ClassifyOf(v); k {
	case KindNull:
		h.Write([]byte{'n'})
	case KindBoolean:
		if v.(bool) {
			h.Write([]byte{'t'})
		} else {
			h.Write([]byte{'f'})
		}
	case KindString:
		h.Write([]byte{'s'})
		h.Write([]byte(v.(string)))
	case KindNumber:
		h.Write([]byte{'#'})
		d, _ := AsNumber(v)
		r := new(big.Rat)
		r.SetString(d.String())
		h.Write([]byte(r.RatString()))
	case KindArray:
		h.Write([]byte{'['})
		for _, e := range v.([]any) {
			writeCanonical(h, e)
		}
		h.Write([]byte{']'})
	case KindObject:
		h.Write([]byte{'{'})
		obj := v.(map[string]any)
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte(k))
			h.Write([]byte{':'})
			writeCanonical(h, obj[k])
		}
		h.Write([]byte{'}'})
	}
}

// CodePointLength returns the length of s in Unicode code points, as
// required by minLength/maxLength (not bytes, not UTF-16 code units).
func CodePointLength(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
