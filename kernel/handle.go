package kernel

import (
	"runtime"
	"weak"

	"github.com/yuth/jsii/domain"
)

// handle is the kernel's per-object bookkeeping record (§4.3). The store
// holds a strong reference to the real referent (realReferent) for as long
// as the handle exists; the only weak reference is proxyRef, pointing at the
// proxy. A proxy, while alive, transitively keeps realReferent reachable
// through its own strong reference — but that reachability is irrelevant to
// the handle, which already pins realReferent directly.
type handle struct {
	instanceId string
	classFQN   string

	declaredInterfaces []string
	providedInterfaces []string

	realReferent interface{}
	proxyRef     weak.Pointer[proxy]

	store *ObjectStore
}

var _ domain.HandleIface = (*handle)(nil)

func (h *handle) InstanceId() string { return h.instanceId }
func (h *handle) ClassFQN() string   { return h.classFQN }

func (h *handle) Interfaces() []string {
	out := make([]string, len(h.declaredInterfaces))
	copy(out, h.declaredInterfaces)
	return out
}

// HasProxy reports whether the weak proxy reference still resolves.
func (h *handle) HasProxy() bool {
	return h.proxyRef.Value() != nil
}

// Proxy returns the live proxy, minting (and registering for finalization) a
// new one if the prior one was collected. New proxy minting is idempotent
// relative to user-visible behavior: referential identity of proxies is not
// a guarantee, only identity of the underlying referent is.
func (h *handle) Proxy() domain.ProxyIface {
	if live := h.proxyRef.Value(); live != nil {
		return live
	}

	p := &proxy{instanceId: h.instanceId, real: h.realReferent}
	h.proxyRef = weak.Make(p)

	// The cleanup argument must not hold a strong reference to p itself, or
	// p would never become unreachable. It holds only the owning handle, per
	// §4.5's "receives the handle, not the instanceId directly" rule — so
	// the callback can't accidentally revive anything by touching the proxy.
	runtime.AddCleanup(p, finalizeHandle, h)

	return p
}

// finalizeHandle is invoked by the Go runtime after a handle's proxy becomes
// unreachable. It must do nothing beyond marking the instance finalized: it
// may run on a reclamation goroutine with indeterminate timing relative to
// the event loop (§5).
func finalizeHandle(h *handle) {
	h.store.markReleasable(h.instanceId)
}

// MergeInterfaces extends providedInterfaces with the closure of each new
// FQN, adds the raw FQNs to declaredInterfaces, then re-minimises
// declaredInterfaces against providedInterfaces (§4.3).
func (h *handle) MergeInterfaces(fqns []string) error {
	combined := make([]string, 0, len(h.declaredInterfaces)+len(fqns))
	combined = append(combined, h.declaredInterfaces...)
	combined = append(combined, fqns...)

	minimised, provided, err := h.store.closure.Minimise(h.classFQN, combined)
	if err != nil {
		return err
	}

	h.declaredInterfaces = minimised
	h.providedInterfaces = provided
	return nil
}

// ObjectReference produces the wire reference for this handle: the
// interfaces list is present iff the minimised declared set is non-empty.
func (h *handle) ObjectReference() domain.ObjectRef {
	ref := domain.ObjectRef{InstanceId: h.instanceId}
	if len(h.declaredInterfaces) > 0 {
		ref.Interfaces = h.Interfaces()
	}
	return ref
}
