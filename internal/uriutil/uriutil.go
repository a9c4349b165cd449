// Package uriutil provides the small slice of URI handling the evaluation
// engine needs itself (base-URI resolution and fragment splitting).
// Full URI parsing/normalization is treated as an external collaborator
// per spec.md §1; this package is a thin wrapper over net/url for exactly
// the two operations the engine cannot avoid doing inline.
package uriutil

import (
	"net/url"
	"strings"
)

// Split separates a URI reference into its non-fragment part and fragment
// (without the leading "#").
func Split(ref string) (base, fragment string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// Resolve joins ref against base the way $ref/$id resolution requires:
// relative references resolve against base, absolute ones pass through.
func Resolve(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if refURL.IsAbs() {
		return ref, nil
	}
	if base == "" {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// IsJSONPointerFragment reports whether fragment is empty or starts with
// "/", the only two shapes navigable as a JSON Pointer; anything else is a
// plain-name anchor.
func IsJSONPointerFragment(fragment string) bool {
	return fragment == "" || strings.HasPrefix(fragment, "/")
}
