// Package schemaerr implements the fatal side of the error taxonomy:
// schema compilation errors and evaluation-time reference resolution
// errors (spec.md §7 categories 1 and 2). Validation failures (category 3)
// never appear here; they live only on the result tree.
package schemaerr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Code identifies the kind of fatal error.
type Code string

const (
	// Compilation errors.
	ErrMalformedSchema  Code = "schema-malformed"
	ErrBadKeywordArg    Code = "schema-bad-keyword-argument"
	ErrUnresolvableID   Code = "schema-unresolvable-id"
	ErrDuplicateAnchor  Code = "schema-duplicate-anchor"
	ErrUnknownMetaSchema Code = "schema-unknown-meta-schema"

	// Reference resolution errors (evaluation time).
	ErrRefNotFound       Code = "ref-not-found"
	ErrDynamicScopeMiss  Code = "ref-dynamic-scope-miss"
	ErrFetchFailed       Code = "ref-fetch-failed"
	ErrCycle             Code = "ref-cycle-detected"
)

// Diagnostic describes a single fatal error with a stable code, a message,
// and the schema location it occurred at.
type Diagnostic struct {
	Code     Code
	Message  string
	Location string // absolute-keyword-location or schema pointer
	Expected []string
	Actual   string
}

// Error renders a Diagnostic for display.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "schemaerr: <nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Message)
	if d.Location != "" {
		fmt.Fprintf(&b, " at %s", d.Location)
	}
	if len(d.Expected) > 0 {
		fmt.Fprintf(&b, " (expected: %s)", strings.Join(d.Expected, ", "))
	}
	if d.Actual != "" {
		fmt.Fprintf(&b, " (actual: %s)", d.Actual)
	}
	return b.String()
}

// New builds a Diagnostic.
func New(code Code, location, msg string) *Diagnostic {
	return &Diagnostic{Code: code, Message: msg, Location: location}
}

// Newf builds a Diagnostic with a formatted message.
func Newf(code Code, location, format string, args ...any) *Diagnostic {
	return New(code, location, fmt.Sprintf(format, args...))
}

// Diagnostics is a non-empty collection of fatal errors, implementing error.
type Diagnostics []*Diagnostic

func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no schema errors"
	case 1:
		return d[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", d[0].Error(), len(d)-1)
	}
}

// Join combines diagnostics collected from independent compilation passes
// (e.g. several malformed keywords on one schema node) into a single error, using
// go-multierror so callers that only care about a plain error can still
// unwrap with errors.Is/As across every diagnostic.
func Join(all ...Diagnostics) error {
	var merr *multierror.Error
	for _, ds := range all {
		for _, d := range ds {
			merr = multierror.Append(merr, d)
		}
	}
	if merr == nil {
		return nil
	}
	return merr
}

// WrapFetch wraps a caller fetcher's transport error as a reference
// resolution fatal error.
func WrapFetch(location, uri string, cause error) *Diagnostic {
	return Newf(ErrFetchFailed, location, "fetching %s: %v", uri, cause)
}

// AsDiagnostics flattens err back into a Diagnostics slice, unwrapping a
// *multierror.Error produced by Join so nested compilation passes (e.g. a
// subschema under "properties" that itself failed with several errors) can
// be folded into the caller's own collection instead of losing everything
// but the first one.
func AsDiagnostics(err error) Diagnostics {
	switch e := err.(type) {
	case nil:
		return nil
	case Diagnostics:
		return e
	case *Diagnostic:
		return Diagnostics{e}
	case *multierror.Error:
		var out Diagnostics
		for _, sub := range e.Errors {
			out = append(out, AsDiagnostics(sub)...)
		}
		return out
	default:
		return Diagnostics{New(ErrMalformedSchema, "", err.Error())}
	}
}
