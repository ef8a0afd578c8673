package kernel

import (
	"sort"

	"github.com/yuth/jsii/domain"
)

// closureBuilder implements domain.InterfaceClosureIface (§4.2) against a
// domain.TypeResolverIface supplied by the (out-of-scope) type loader.
type closureBuilder struct {
	resolver domain.TypeResolverIface
}

var _ domain.InterfaceClosureIface = (*closureBuilder)(nil)

func newClosureBuilder(resolver domain.TypeResolverIface) *closureBuilder {
	return &closureBuilder{resolver: resolver}
}

// Closure walks classFQN's base chain, collecting every interfaces entry at
// each level and recursively adding each one's parent interfaces.
func (c *closureBuilder) Closure(classFQN string) ([]string, error) {
	acc := map[string]bool{}
	cur := classFQN

	for cur != "" {
		td, err := c.resolver.ResolveType(cur)
		if err != nil {
			return nil, err
		}
		if td.Kind != domain.KindClass {
			return nil, domain.NewError(domain.InvalidType,
				"expected class FQN, got %s for %q", td.Kind, cur)
		}

		for _, iface := range td.Interfaces {
			if err := c.addInterface(iface, acc); err != nil {
				return nil, err
			}
		}

		cur = td.Base
	}

	return sortedKeys(acc), nil
}

// addInterface adds iface and, recursively, its parent interfaces to acc.
// Already-visited interfaces are not re-walked.
func (c *closureBuilder) addInterface(iface string, acc map[string]bool) error {
	if acc[iface] {
		return nil
	}

	td, err := c.resolver.ResolveType(iface)
	if err != nil {
		return err
	}
	if td.Kind != domain.KindInterface {
		return domain.NewError(domain.InvalidType,
			"expected interface FQN, got %s for %q", td.Kind, iface)
	}

	acc[iface] = true
	for _, parent := range td.Interfaces {
		if err := c.addInterface(parent, acc); err != nil {
			return err
		}
	}
	return nil
}

// parentsOf returns fqn's transitive parent interfaces, excluding fqn
// itself. Used by Minimise to grow providedInterfaces without duplicating
// the newly declared FQN into both sets (invariant: declared ∩ provided = ∅).
func (c *closureBuilder) parentsOf(fqn string) ([]string, error) {
	td, err := c.resolver.ResolveType(fqn)
	if err != nil {
		return nil, err
	}
	if td.Kind != domain.KindInterface {
		return nil, domain.NewError(domain.InvalidType,
			"expected interface FQN, got %s for %q", td.Kind, fqn)
	}

	acc := map[string]bool{}
	for _, parent := range td.Interfaces {
		if err := c.addInterface(parent, acc); err != nil {
			return nil, err
		}
	}
	return sortedKeys(acc), nil
}

// Minimise folds declared into classFQN's closure, dropping any declared
// entry already implied by the class or by another declared entry's own
// ancestors, and returns the non-redundant declared set plus the provided
// (implied-for-free) set.
func (c *closureBuilder) Minimise(classFQN string, declared []string) ([]string, []string, error) {
	base, err := c.Closure(classFQN)
	if err != nil {
		return nil, nil, err
	}

	provided := map[string]bool{}
	for _, f := range base {
		provided[f] = true
	}

	seen := map[string]bool{}
	var minimised []string

	for _, d := range declared {
		if seen[d] {
			continue
		}
		seen[d] = true

		if provided[d] {
			continue
		}

		minimised = append(minimised, d)

		parents, err := c.parentsOf(d)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range parents {
			provided[p] = true
		}
	}

	// Re-check: a later declared entry's parents may subsume an earlier
	// minimised one (order of declaration is not guaranteed to be
	// topologically sorted). Drop any minimised entry that ended up implied.
	final := minimised[:0:0]
	for _, m := range minimised {
		if provided[m] {
			continue
		}
		final = append(final, m)
	}

	sort.Strings(final)
	return final, sortedKeys(provided), nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
