package domain

//
// ObjectRef is the wire shape of an object reference, round-tripped as
// { "$jsii.byref": "«fqn»@«n»", "$jsii.interfaces"?: ["fqn", ...] }.
//
type ObjectRef struct {
	InstanceId string   `json:"$jsii.byref"`
	Interfaces []string `json:"$jsii.interfaces,omitempty"`
}

// ProxyIface is the user-visible wrapper returned by the store for a managed
// object. It forwards member access to the real referent (left to the host
// runtime binding, out of scope here) and exposes only what the store needs
// to recover identity and observe liveness.
type ProxyIface interface {
	// InstanceId of the handle this proxy was minted for.
	InstanceId() string

	// RealObject returns the hidden referent slot, defeating identity loss
	// when the proxy is handed back in as an argument.
	RealObject() interface{}
}

// HandleIface is the kernel's per-object bookkeeping record (§4.3).
type HandleIface interface {
	InstanceId() string
	ClassFQN() string

	// Interfaces returns the minimised, lexicographically sorted
	// declaredInterfaces set.
	Interfaces() []string

	// HasProxy reports whether the weak proxy reference still resolves.
	HasProxy() bool

	// Proxy returns the live proxy, minting a new one if the prior one was
	// collected.
	Proxy() ProxyIface

	// MergeInterfaces extends providedInterfaces with the closure of each new
	// FQN and re-minimises declaredInterfaces.
	MergeInterfaces(fqns []string) error

	// ObjectReference produces the wire reference for this handle.
	ObjectReference() ObjectRef
}

// ObjectStoreIface is the kernel-side registry (§4.5).
type ObjectStoreIface interface {
	// Register records a managed object, merging into an existing handle if
	// the referent is already known. Always returns a live proxy.
	Register(classFQN string, instance interface{}, interfaceFQNs []string) (ProxyIface, ObjectRef, error)

	// Dereference resolves a wire reference back to a live proxy, minting one
	// if necessary and reanimating a dormant handle.
	Dereference(ref ObjectRef) (classFQN string, proxy ProxyIface, interfaces []string, err error)

	// RefObject returns the wire reference for an already-managed instance, or
	// ok=false if it isn't managed.
	RefObject(instance interface{}) (ref ObjectRef, ok bool)

	// RegisterType attaches an FQN marker to a constructor value.
	RegisterType(ctor interface{}, fqn string)

	// TypeFQN recovers the most-specific FQN registered for a constructor.
	TypeFQN(ctor interface{}) (string, bool)

	// Delete removes a handle whose proxy is not live. Fails with
	// StillReachable otherwise.
	Delete(ref ObjectRef) error

	// FinalizedInstanceIds drains and returns the set of instance IDs whose
	// proxy has been observed finalized since the last call.
	FinalizedInstanceIds() []string

	// Stats reports a snapshot of store occupancy without mutating it.
	Stats() StoreStats

	// Events returns the read side of the lifecycle event channel.
	Events() <-chan Event
}

// StoreStats is a diagnostic snapshot of ObjectStore occupancy.
type StoreStats struct {
	ManagedObjectCount    int
	FinalizedPendingCount int
}

// InstanceSequenceIface generates monotonically increasing per-session
// instance IDs (§4.1).
type InstanceSequenceIface interface {
	Next(classFQN string) string
}
