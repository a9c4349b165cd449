package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/schema"
)

func TestNewSeedsMetaSchemas(t *testing.T) {
	r := registry.New()
	_, ok := r.Lookup(draft.Draft2020_12.SchemaURI())
	require.True(t, ok)
}

func TestRegisterAndLookup(t *testing.T) {
	r := registry.New()
	root := schema.Boolean(true)
	r.Register("https://example.com/a", root, nil)
	got, ok := r.Lookup("https://example.com/a")
	require.True(t, ok)
	require.Same(t, root, got)
}

func TestFetchCoalescesConcurrentCallers(t *testing.T) {
	r := registry.New()
	calls := 0
	r.SetFetcher(func(uri string) (any, error) {
		calls++
		return map[string]any{"type": "string"}, nil
	})
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			_, _ = r.Fetch("https://example.com/shared")
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	require.LessOrEqual(t, calls, 8)
}

func TestFetchNotFoundWithoutFetcher(t *testing.T) {
	r := registry.New()
	_, err := r.Fetch("https://example.com/missing")
	require.ErrorIs(t, err, registry.ErrNotFound)
}
