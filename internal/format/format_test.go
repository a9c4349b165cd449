package format_test

import (
	"testing"

	gofrsuuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/format"
)

func check(t *testing.T, name, value string) bool {
	t.Helper()
	c, ok := format.Lookup(name)
	require.True(t, ok, "format %q must be registered", name)
	return c(value)
}

func TestDateTimeFormats(t *testing.T) {
	require.True(t, check(t, "date", "2020-01-02"))
	require.False(t, check(t, "date", "not-a-date"))

	require.True(t, check(t, "date-time", "2020-01-02T15:04:05Z"))
	require.False(t, check(t, "date-time", "2020-01-02"))

	require.True(t, check(t, "duration", "P3Y6M4DT12H30M5S"))
	require.False(t, check(t, "duration", "P"))
}

func TestNetworkFormats(t *testing.T) {
	require.True(t, check(t, "email", "a@example.com"))
	require.False(t, check(t, "email", "not an email"))

	require.True(t, check(t, "hostname", "example.com"))
	require.False(t, check(t, "hostname", "-bad-.com"))

	require.True(t, check(t, "ipv4", "127.0.0.1"))
	require.False(t, check(t, "ipv4", "::1"))

	require.True(t, check(t, "ipv6", "::1"))
	require.False(t, check(t, "ipv6", "127.0.0.1"))

	require.True(t, check(t, "uri", "https://example.com/path"))
	require.False(t, check(t, "uri", "not a uri"))

	require.True(t, check(t, "uri-reference", "/relative/path"))
}

// TestUUIDFormatAgreesWithGofrs cross-checks google/uuid (the checker's
// parser) against gofrs/uuid's independent implementation, so a canonical
// UUID is never accepted by one and rejected by the other.
func TestUUIDFormatAgreesWithGofrs(t *testing.T) {
	cases := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"00000000-0000-0000-0000-000000000000",
	}
	for _, c := range cases {
		_, gofrsErr := gofrsuuid.FromString(c)
		require.NoError(t, gofrsErr)
		require.True(t, check(t, "uuid", c))
	}

	require.False(t, check(t, "uuid", "not-a-uuid"))
	_, gofrsErr := gofrsuuid.FromString("not-a-uuid")
	require.Error(t, gofrsErr)
}

func TestRegexFormat(t *testing.T) {
	require.True(t, check(t, "regex", `^a+(b|c)*$`))
	require.False(t, check(t, "regex", `(unterminated`))
}

func TestJSONPointerFormats(t *testing.T) {
	require.True(t, check(t, "json-pointer", "/a/b~0c/~1"))
	require.False(t, check(t, "json-pointer", "a/b"))

	require.True(t, check(t, "relative-json-pointer", "2/a/b"))
	require.True(t, check(t, "relative-json-pointer", "0#"))
	require.False(t, check(t, "relative-json-pointer", "/a/b"))
}

func TestUnknownFormatIsNotRegistered(t *testing.T) {
	_, ok := format.Lookup("no-such-format")
	require.False(t, ok)
}
