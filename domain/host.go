package domain

// HostProxyIface is the host runtime's user-facing proxy wrapper. The host
// reference table observes its liveness through a weak reference and its
// collection through the host runtime's finalization facility; neither is
// implemented here (owned by the language-specific host binding), only the
// shape the table needs to drive the protocol is.
type HostProxyIface interface {
	InstanceId() string
}

// HostRecordIface is a single entry in the host reference table (§4.6).
type HostRecordIface interface {
	InstanceId() string
	DeclaredInterfaces() []string

	// HasStrong reports whether this record still holds a strong reference
	// (only ever true for host-created objects that haven't been released).
	HasStrong() bool

	// HasProxy reports whether the weakly-held host proxy still resolves.
	HasProxy() bool
}

// HostReferenceTableIface mirrors a subset of the kernel's registry on the
// host side (§4.6).
type HostReferenceTableIface interface {
	// TrackCreated records a host-created object: a strong ref is held until
	// a release notification names its instance ID.
	TrackCreated(ref ObjectRef, proxy HostProxyIface)

	// TrackKernelOrigin records an object the kernel returned from an
	// invocation: no strong ref is held, a fresh proxy can always be minted
	// by dereferencing again.
	TrackKernelOrigin(ref ObjectRef, proxy HostProxyIface)

	// HandleRelease processes a release notification, dropping the strong
	// ref (if any) for each named instance ID.
	HandleRelease(instanceIds []string)

	// DrainFinalizedProxies returns the instance IDs of host proxies observed
	// garbage collected since the last call — candidates for a del request.
	DrainFinalizedProxies() []string

	// Lookup returns the record for an instance ID, if tracked.
	Lookup(instanceId string) (HostRecordIface, bool)

	// Forget removes a record entirely (after a del request succeeds).
	Forget(instanceId string)
}
