// Package registry implements the Schema Registry (spec.md §4.B): an
// absolute-URI keyed map of compiled schemas, seeded with a stub entry per
// supported meta-schema, with an optional caller-supplied fetch hook for
// remote schemas. Grounded on jacoelho-xsd's internal/loader (URI-keyed
// cache of parsed schema documents, fetch-once-per-URI) with the
// reentrancy requirement (spec.md §5) satisfied via
// golang.org/x/sync/singleflight rather than a hand-rolled in-flight map.
package registry

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/schema"
)

// Fetcher resolves a URI the registry has no compiled schema for yet,
// returning a raw decoded JSON document (map[string]any, []any, or a
// scalar/bool) or ErrNotFound.
type Fetcher func(uri string) (any, error)

// ErrNotFound is the sentinel a Fetcher returns for an unknown URI.
var ErrNotFound = fmt.Errorf("registry: schema not found")

// resource is one compiled, URI-addressable schema resource: its root
// node plus the pointer/anchor indices needed to navigate $ref fragments
// inside it.
type resource struct {
	root         *schema.Schema
	pointerIndex map[string]*schema.Schema
}

// Registry maps absolute URIs to compiled schemas.
type Registry struct {
	mu            sync.RWMutex
	resources     map[string]*resource
	fetcher       Fetcher
	sf            singleflight.Group
	cacheNegative bool
	negative      map[string]bool
}

// New returns a Registry pre-seeded with a stub entry for every draft's
// meta-schema URI (spec.md §4.B "pre-populated with meta-schemas for each
// supported draft"). The engine only consults these to confirm a $schema
// value names a known draft; it does not meta-validate schema documents
// against the full official meta-schemas (spec.md §1 non-goal).
func New() *Registry {
	r := &Registry{resources: map[string]*resource{}, negative: map[string]bool{}}
	for _, d := range []draft.Draft{draft.Draft6, draft.Draft7, draft.Draft2019_09, draft.Draft2020_12, draft.DraftNext} {
		uri := d.SchemaURI()
		r.resources[uri] = &resource{root: schema.Boolean(true), pointerIndex: map[string]*schema.Schema{}}
	}
	return r
}

// SetFetcher installs the caller's remote-schema loader.
func (r *Registry) SetFetcher(fn Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetcher = fn
}

// SetCacheNegativeFetchFailures opts into caching "not found" results so a
// repeatedly-referenced missing URI is not re-fetched.
func (r *Registry) SetCacheNegativeFetchFailures(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cacheNegative = enabled
}

// Register stores a compiled resource under baseURI (no fragment).
func (r *Registry) Register(baseURI string, root *schema.Schema, pointerIndex map[string]*schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pointerIndex == nil {
		pointerIndex = map[string]*schema.Schema{}
	}
	r.resources[baseURI] = &resource{root: root, pointerIndex: pointerIndex}
}

// Lookup returns the resource root compiled schema for baseURI.
func (r *Registry) Lookup(baseURI string) (*schema.Schema, bool) {
	r.mu.RLock()
	res, ok := r.resources[baseURI]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return res.root, true
}

// ResolvePointer navigates a JSON Pointer fragment inside the resource
// identified by baseURI.
func (r *Registry) ResolvePointer(baseURI, pointer string) (*schema.Schema, bool) {
	r.mu.RLock()
	res, ok := r.resources[baseURI]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	node, ok := res.pointerIndex[pointer]
	return node, ok
}

// ResolveAnchor looks up a plain-name anchor within the resource
// identified by baseURI.
func (r *Registry) ResolveAnchor(baseURI, name string) (*schema.Schema, bool) {
	root, ok := r.Lookup(baseURI)
	if !ok || root == nil || root.Anchors == nil {
		return nil, false
	}
	s, ok := root.Anchors[name]
	return s, ok
}

// ResolveDynamicAnchor looks up a dynamic anchor within the resource
// identified by baseURI.
func (r *Registry) ResolveDynamicAnchor(baseURI, name string) (*schema.Schema, bool) {
	root, ok := r.Lookup(baseURI)
	if !ok || root == nil || root.DynamicAnchors == nil {
		return nil, false
	}
	s, ok := root.DynamicAnchors[name]
	return s, ok
}

// Resolved reports whether baseURI already has a registered resource,
// without triggering a fetch.
func (r *Registry) Resolved(baseURI string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resources[baseURI]
	return ok
}

// Fetch consults the configured fetcher for an unresolved baseURI,
// coalescing concurrent callers for the same URI into a single invocation
// (spec.md §5 "the fetcher callback... must be reentrant if the caller
// concurrently compiles multiple schemas" — singleflight makes reentrancy
// unnecessary for the common case of the same URI; a fetcher touching
// unrelated URIs concurrently must still itself be reentrant).
func (r *Registry) Fetch(baseURI string) (any, error) {
	r.mu.RLock()
	negative := r.negative[baseURI]
	fetcher := r.fetcher
	cacheNegative := r.cacheNegative
	r.mu.RUnlock()

	if negative {
		return nil, ErrNotFound
	}
	if fetcher == nil {
		return nil, ErrNotFound
	}

	v, err, _ := r.sf.Do(baseURI, func() (any, error) {
		return fetcher(baseURI)
	})
	if err != nil {
		if cacheNegative {
			r.mu.Lock()
			r.negative[baseURI] = true
			r.mu.Unlock()
		}
		return nil, err
	}
	return v, nil
}
