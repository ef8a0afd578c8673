//
// Package typeregistry provides the out-of-scope type/assembly loader's
// contract (domain.TypeResolverIface) with two concrete pieces: a
// radix-indexed memoizing wrapper around a real resolver, and a minimal
// in-memory resolver good enough to drive the interface-closure builder in
// tests and the host-sim harness. The real FQN resolver — the thing that
// actually loads assemblies and inspects a runtime's type system — remains
// an external collaborator per spec §1.
//
package typeregistry

import (
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/yuth/jsii/domain"
)

// CachingResolver memoizes ResolveType results in an immutable radix tree
// keyed by FQN, the same indexing idiom the teacher used for path-keyed
// handler lookup (handler/handlerDB.go), applied here to dot-delimited FQNs.
type CachingResolver struct {
	mu   sync.Mutex
	tree *iradix.Tree
	next domain.TypeResolverIface
}

var _ domain.TypeResolverIface = (*CachingResolver)(nil)

// NewCachingResolver wraps next with an FQN-indexed cache.
func NewCachingResolver(next domain.TypeResolverIface) *CachingResolver {
	return &CachingResolver{
		tree: iradix.New(),
		next: next,
	}
}

func (c *CachingResolver) ResolveType(fqn string) (domain.TypeDescriptor, error) {
	c.mu.Lock()
	if v, ok := c.tree.Get([]byte(fqn)); ok {
		c.mu.Unlock()
		return v.(domain.TypeDescriptor), nil
	}
	c.mu.Unlock()

	td, err := c.next.ResolveType(fqn)
	if err != nil {
		return domain.TypeDescriptor{}, err
	}

	c.mu.Lock()
	tree, _, _ := c.tree.Insert([]byte(fqn), td)
	c.tree = tree
	c.mu.Unlock()

	return td, nil
}

// StaticResolver is an in-memory TypeResolverIface backed by a fixed map of
// FQN -> TypeDescriptor, registered up front. Useful for tests and the
// host-sim harness; the production binding supplies a real loader instead.
type StaticResolver struct {
	types map[string]domain.TypeDescriptor
}

var _ domain.TypeResolverIface = (*StaticResolver)(nil)

// NewStaticResolver builds a resolver from the given descriptors, keyed by
// their own FQN.
func NewStaticResolver(descriptors ...domain.TypeDescriptor) *StaticResolver {
	r := &StaticResolver{types: make(map[string]domain.TypeDescriptor, len(descriptors))}
	for _, d := range descriptors {
		r.types[d.FQN] = d
	}
	return r
}

func (r *StaticResolver) ResolveType(fqn string) (domain.TypeDescriptor, error) {
	td, ok := r.types[fqn]
	if !ok {
		return domain.TypeDescriptor{}, domain.NewError(domain.InvalidType, "unknown type %q", fqn)
	}
	return td, nil
}
