package jsonvalue_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/jsonvalue"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestMatchesTypeInteger(t *testing.T) {
	cases := []struct {
		lit  string
		want bool
	}{
		{"1", true},
		{"1.0", true},
		{"-0", true},
		{"1.5", false},
	}
	for _, c := range cases {
		v := decode(t, c.lit)
		require.Equal(t, c.want, jsonvalue.MatchesType(v, "integer"), c.lit)
	}
	require.False(t, jsonvalue.MatchesType(decode(t, `"1"`), "integer"))
}

func TestEquivalentObjectsOrderInsensitive(t *testing.T) {
	a := decode(t, `{"a":1,"b":2}`)
	b := decode(t, `{"b":2,"a":1}`)
	require.True(t, jsonvalue.Equivalent(a, b))
}

func TestEquivalentArraysOrderSensitive(t *testing.T) {
	a := decode(t, `[1,2]`)
	b := decode(t, `[2,1]`)
	require.False(t, jsonvalue.Equivalent(a, b))
}

func TestEquivalentNumberLexicalForms(t *testing.T) {
	require.True(t, jsonvalue.Equivalent(decode(t, "1"), decode(t, "1.0")))
}

func TestHashEquivalenceMatchesEquivalent(t *testing.T) {
	a := decode(t, `{"a":1,"b":2}`)
	b := decode(t, `{"b":2,"a":1}`)
	require.Equal(t, jsonvalue.HashEquivalence(a), jsonvalue.HashEquivalence(b))
}

func TestCodePointLength(t *testing.T) {
	require.Equal(t, 2, jsonvalue.CodePointLength("\U0001F600!"))
}
