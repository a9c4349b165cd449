package schemaerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/schemaerr"
)

func TestDiagnosticError(t *testing.T) {
	d := schemaerr.Newf(schemaerr.ErrRefNotFound, "#/properties/a", "cannot resolve %s", "#/defs/x")
	require.Contains(t, d.Error(), "ref-not-found")
	require.Contains(t, d.Error(), "#/properties/a")
}

func TestJoinNilWhenEmpty(t *testing.T) {
	require.Nil(t, schemaerr.Join())
}

func TestJoinCombines(t *testing.T) {
	a := schemaerr.Diagnostics{schemaerr.New(schemaerr.ErrMalformedSchema, "", "bad")}
	b := schemaerr.Diagnostics{schemaerr.New(schemaerr.ErrBadKeywordArg, "", "bad arg")}
	err := schemaerr.Join(a, b)
	require.Error(t, err)
	var target *schemaerr.Diagnostic
	require.True(t, errors.As(err, &target))
}
