// Package refresolve implements the Reference Resolver (spec.md §4.H):
// static $ref resolution, $dynamicRef's dynamic-scope rescan, and
// $recursiveRef's recursive-anchor variant. Grounded on jacoelho-xsd's
// internal/resolver (a small resolver type with a cache map and one error
// type per failure mode) for coding shape; semantics follow
// santhosh-tekuri-jsonschema__draft.go's collectAnchors/collectResources
// (reference material, never copied).
package refresolve

import (
	"sync"

	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/schema"
	"github.com/amis92/jsonschema/internal/schemaerr"
	"github.com/amis92/jsonschema/internal/uriutil"
)

// Compiler lazily compiles a raw fetched document into a registered
// resource, implemented by internal/compile. Declared as an interface
// here so refresolve never imports compile's concrete package (compile
// does not need to know about refresolve either way, but this keeps the
// dependency direction explicit and one-way).
type Compiler interface {
	CompileFetched(baseURI string, raw any) error
}

// Resolver resolves $ref/$dynamicRef/$recursiveRef against a registry.
type Resolver struct {
	reg      *registry.Registry
	compiler Compiler

	mu    sync.Mutex
	cache map[string]*schema.Schema
}

// New creates a Resolver backed by reg. compiler may be nil if the caller
// never needs lazy remote-fetch compilation (e.g. a fully self-contained
// schema document).
func New(reg *registry.Registry, compiler Compiler) *Resolver {
	return &Resolver{reg: reg, compiler: compiler, cache: map[string]*schema.Schema{}}
}

// ScopeProvider exposes the evaluation context's dynamic scope stack
// (outermost first) without refresolve depending on internal/evalctx.
type ScopeProvider interface {
	DynamicScope() []string
}

// ResolveStatic resolves $ref: join raw against currentBaseURI, then
// navigate the fragment (JSON Pointer or plain-name anchor) within the
// target resource.
func (r *Resolver) ResolveStatic(currentBaseURI, raw string) (*schema.Schema, error) {
	cacheKey := currentBaseURI + "\x00" + raw
	r.mu.Lock()
	if cached, ok := r.cache[cacheKey]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	target, err := r.resolveAbsolute(currentBaseURI, raw)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[cacheKey] = target
	r.mu.Unlock()
	return target, nil
}

func (r *Resolver) resolveAbsolute(currentBaseURI, raw string) (*schema.Schema, error) {
	absolute, err := uriutil.Resolve(currentBaseURI, raw)
	if err != nil {
		return nil, schemaerr.Newf(schemaerr.ErrRefNotFound, currentBaseURI, "invalid reference %q: %v", raw, err)
	}
	base, frag := uriutil.Split(absolute)

	if !r.reg.Resolved(base) {
		if err := r.fetchAndCompile(base); err != nil {
			return nil, err
		}
	}

	if uriutil.IsJSONPointerFragment(frag) {
		if frag == "" {
			if node, ok := r.reg.Lookup(base); ok {
				return node, nil
			}
			return nil, schemaerr.Newf(schemaerr.ErrRefNotFound, currentBaseURI, "unresolved base %q", base)
		}
		if node, ok := r.reg.ResolvePointer(base, frag); ok {
			return node, nil
		}
		return nil, schemaerr.Newf(schemaerr.ErrRefNotFound, currentBaseURI, "pointer %q not found in %q", frag, base)
	}

	if node, ok := r.reg.ResolveAnchor(base, frag); ok {
		return node, nil
	}
	return nil, schemaerr.Newf(schemaerr.ErrRefNotFound, currentBaseURI, "anchor %q not found in %q", frag, base)
}

func (r *Resolver) fetchAndCompile(base string) error {
	raw, err := r.reg.Fetch(base)
	if err != nil {
		return schemaerr.WrapFetch(base, base, err)
	}
	if r.compiler == nil {
		return schemaerr.Newf(schemaerr.ErrFetchFailed, base, "fetched %q but no compiler configured", base)
	}
	return r.compiler.CompileFetched(base, raw)
}

// ResolveDynamic resolves $dynamicRef: like $ref, but if the statically
// resolved target sits behind a $dynamicAnchor, the dynamic scope stack is
// rescanned from outermost inward for the first resource that also
// declares a $dynamicAnchor of the same name; that resource's anchor wins
// (spec.md §4.H).
func (r *Resolver) ResolveDynamic(scope ScopeProvider, currentBaseURI, raw, anchorName string) (*schema.Schema, error) {
	static, err := r.ResolveStatic(currentBaseURI, raw)
	if err != nil {
		return nil, err
	}
	if anchorName == "" {
		return static, nil
	}
	absolute, err := uriutil.Resolve(currentBaseURI, raw)
	if err != nil {
		return static, nil
	}
	targetBase, _ := uriutil.Split(absolute)
	if anchored, ok := r.reg.ResolveDynamicAnchor(targetBase, anchorName); !ok || anchored != static {
		return static, nil
	}
	for _, base := range scope.DynamicScope() {
		if node, ok := r.reg.ResolveDynamicAnchor(base, anchorName); ok {
			return node, nil
		}
	}
	return static, nil
}

// ResolveRecursive resolves $recursiveRef (2019-09): the statically
// resolved target only activates dynamic behavior when its resource
// declares $recursiveAnchor: true, in which case the dynamic scope is
// rescanned from outermost inward for the first resource whose root also
// carries $recursiveAnchor: true.
func (r *Resolver) ResolveRecursive(scope ScopeProvider, currentBaseURI, raw string) (*schema.Schema, error) {
	static, err := r.ResolveStatic(currentBaseURI, raw)
	if err != nil {
		return nil, err
	}
	if static == nil || static.IsBoolean || !static.RecursiveAnchor {
		return static, nil
	}
	for _, base := range scope.DynamicScope() {
		if root, ok := r.reg.Lookup(base); ok && !root.IsBoolean && root.RecursiveAnchor {
			return root, nil
		}
	}
	return static, nil
}
