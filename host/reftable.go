//
// Package host implements the host-side mirror of the kernel's object
// registry (§4.6): for every managed object known to the host, a weak
// reference to the host proxy plus — only for host-created objects — a
// conditional strong reference released on the kernel's release
// notification. It also produces the del requests the protocol sends back
// to the kernel once a host proxy is observed collected.
//
package host

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
)

// record is a single entry in the reference table.
type record struct {
	ref    domain.ObjectRef
	proxy  domain.HostProxyIface
	strong domain.HostProxyIface // non-nil iff this object was host-created and not yet released
}

var _ domain.HostRecordIface = (*record)(nil)

func (r *record) InstanceId() string            { return r.ref.InstanceId }
func (r *record) DeclaredInterfaces() []string  { return r.ref.Interfaces }
func (r *record) HasStrong() bool               { return r.strong != nil }
func (r *record) HasProxy() bool                { return r.proxy != nil }

// ReferenceTable mirrors the kernel's registry on the host side (§4.6).
//
// This implementation models the host proxy's weak reference and GC
// notification explicitly rather than relying on a host-runtime weak/
// reference-queue facility, because this module *is* a host-side peer
// written in Go rather than a binding for some other host language: a
// caller drives liveness transitions (DropProxy) the way the language
// binding's own weak-reference/finalizer machinery would in a real host
// runtime (§9 "Proxy vs direct reference").
type ReferenceTable struct {
	mu      sync.Mutex
	records map[string]*record

	// finalizedProxies queues instance IDs whose host proxy was dropped
	// while not held strong — candidates for a del request, drained by
	// DrainFinalizedProxies.
	finalizedProxies []string
}

var _ domain.HostReferenceTableIface = (*ReferenceTable)(nil)

// NewReferenceTable builds an empty table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{records: make(map[string]*record)}
}

// TrackCreated records a host-created object: a strong ref is held until a
// release notification names its instance ID (§4.6, host-created row).
func (t *ReferenceTable) TrackCreated(ref domain.ObjectRef, proxy domain.HostProxyIface) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records[ref.InstanceId] = &record{ref: ref, proxy: proxy, strong: proxy}
	logrus.WithField("instanceId", ref.InstanceId).Debug("host: tracking host-created object (strong)")
}

// TrackKernelOrigin records an object returned by the kernel from an
// invocation: no strong ref is held — the ban described in §4.6 — since a
// fresh proxy can always be minted by dereferencing the reference again.
func (t *ReferenceTable) TrackKernelOrigin(ref domain.ObjectRef, proxy domain.HostProxyIface) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records[ref.InstanceId] = &record{ref: ref, proxy: proxy}
	logrus.WithField("instanceId", ref.InstanceId).Debug("host: tracking kernel-origin object (weak only)")
}

// HandleRelease processes a release notification: the strong ref (if any)
// for each named instance ID is dropped. Per the state table in §4.6, this
// is the only transition out of both-reachable for a host-created object.
func (t *ReferenceTable) HandleRelease(instanceIds []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range instanceIds {
		r, ok := t.records[id]
		if !ok {
			continue
		}
		r.strong = nil
		logrus.WithField("instanceId", id).Debug("host: strong ref dropped on kernel release")
	}
}

// DropProxy models the host runtime observing that a host proxy has been
// garbage collected (via its own weak/reference-queue facility). If the
// record has no strong reference left, its instance ID becomes a candidate
// for a del request.
func (t *ReferenceTable) DropProxy(instanceId string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[instanceId]
	if !ok {
		return
	}
	r.proxy = nil

	if r.strong == nil {
		t.finalizedProxies = append(t.finalizedProxies, instanceId)
	}
}

// DrainFinalizedProxies returns and clears the queue of instance IDs ready
// for a del request.
func (t *ReferenceTable) DrainFinalizedProxies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.finalizedProxies) == 0 {
		return nil
	}
	out := t.finalizedProxies
	t.finalizedProxies = nil
	return out
}

func (t *ReferenceTable) Lookup(instanceId string) (domain.HostRecordIface, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[instanceId]
	if !ok {
		return nil, false
	}
	return r, true
}

// Forget removes a record entirely, after a del request has succeeded.
func (t *ReferenceTable) Forget(instanceId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, instanceId)
}
