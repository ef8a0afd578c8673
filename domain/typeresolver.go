package domain

// TypeKind distinguishes the sorts of types the out-of-scope type/assembly
// loader can resolve an FQN to.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
)

// TypeDescriptor is the contract supplied by the (out-of-scope) type loader.
type TypeDescriptor struct {
	FQN        string
	Kind       TypeKind
	Base       string   // parent class FQN, class kind only
	Interfaces []string // directly declared interfaces at this level
}

// TypeResolverIface is consumed, not implemented, by the interface-closure
// builder: resolveType(fqn) -> TypeDescriptor, supplied by the type/assembly
// loader this spec treats as an external collaborator.
type TypeResolverIface interface {
	ResolveType(fqn string) (TypeDescriptor, error)
}

// InterfaceClosureIface computes the transitive set of interfaces granted by
// a class or interface FQN (§4.2).
type InterfaceClosureIface interface {
	// Closure walks the base chain of classFQN and returns the full transitive
	// interface set. An FQN that does not resolve to a class fails with
	// InvalidType.
	Closure(fqn string) ([]string, error)

	// Minimise drops any element of declared that also appears in the
	// closure of classFQN union the remaining declared elements, leaving only
	// the non-redundant declarations.
	Minimise(classFQN string, declared []string) (minimised []string, provided []string, err error)
}
