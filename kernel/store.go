//
// Package kernel implements the child-process side of the object store
// (§4.5): the registry mapping instance IDs to handles to referents, the
// lifecycle event stream, and the finalized-instance-ID drain consumed by
// the release-notification protocol (ipc package).
//
package kernel

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
)

// eventBufferSize bounds how many lifecycle events can be queued before a
// slow listener causes drops. Store mutation never blocks on listeners.
const eventBufferSize = 256

// ObjectStore is the kernel-side registry (§4.5).
type ObjectStore struct {
	mu sync.Mutex

	handles    map[string]*handle
	byInstance map[interface{}]*handle
	typeMarker map[interface{}]string

	finalized map[string]bool

	seq     *sequence
	closure *closureBuilder

	events chan domain.Event
}

var _ domain.ObjectStoreIface = (*ObjectStore)(nil)

// NewObjectStore constructs an empty store. origin/stride parameterize the
// instance ID sequence (§4.1); pass 0 for both to get the spec's defaults
// (origin 10000, stride 1).
func NewObjectStore(resolver domain.TypeResolverIface, origin, stride int) *ObjectStore {
	if origin == 0 {
		origin = DefaultOrigin
	}
	if stride == 0 {
		stride = DefaultStride
	}

	return &ObjectStore{
		handles:    make(map[string]*handle),
		byInstance: make(map[interface{}]*handle),
		typeMarker: make(map[interface{}]string),
		finalized:  make(map[string]bool),
		seq:        newSequence(origin, stride),
		closure:    newClosureBuilder(resolver),
		events:     make(chan domain.Event, eventBufferSize),
	}
}

func (s *ObjectStore) Events() <-chan domain.Event {
	return s.events
}

func (s *ObjectStore) emit(kind domain.EventKind, instanceId string) {
	select {
	case s.events <- domain.Event{Kind: kind, InstanceId: instanceId}:
	default:
		logrus.Warnf("object-store event channel full, dropping %s for %s", kind, instanceId)
	}
}

// Register records a managed object (§4.5). Returns a live proxy whether the
// instance was already known or is being seen for the first time.
func (s *ObjectStore) Register(classFQN string, instance interface{}, interfaceFQNs []string) (domain.ProxyIface, domain.ObjectRef, error) {
	if instance == nil {
		return nil, domain.ObjectRef{}, domain.NewError(domain.NullArgument, "register called with nil instance")
	}

	s.mu.Lock()

	key := realObject(instance)
	if h, ok := s.byInstance[key]; ok {
		if err := h.MergeInterfaces(interfaceFQNs); err != nil {
			s.mu.Unlock()
			return nil, domain.ObjectRef{}, err
		}
		p := h.Proxy()
		ref := h.ObjectReference()
		s.mu.Unlock()

		logrus.WithFields(logrus.Fields{"instanceId": h.instanceId}).Debug("object re-registered, interfaces merged")
		return p, ref, nil
	}

	instanceId := s.seq.Next(classFQN)
	h := &handle{
		instanceId:   instanceId,
		classFQN:     classFQN,
		realReferent: key,
		store:        s,
	}
	if err := h.MergeInterfaces(interfaceFQNs); err != nil {
		s.mu.Unlock()
		return nil, domain.ObjectRef{}, err
	}

	s.handles[instanceId] = h
	s.byInstance[key] = h

	p := h.Proxy()
	ref := h.ObjectReference()
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{"instanceId": instanceId, "classFQN": classFQN}).Info("object managed")
	s.emit(domain.EventManaged, instanceId)

	return p, ref, nil
}

// Dereference resolves a wire reference back to a live proxy (§4.5). This is
// the handoff point from the wire to user-visible values and reanimates a
// dormant handle back to proxy-live.
func (s *ObjectStore) Dereference(ref domain.ObjectRef) (string, domain.ProxyIface, []string, error) {
	s.mu.Lock()

	h, ok := s.handles[ref.InstanceId]
	if !ok {
		s.mu.Unlock()
		return "", nil, nil, domain.NewError(domain.UnknownReference, "no handle for %q", ref.InstanceId)
	}

	wasDormant := !h.HasProxy()
	p := h.Proxy()
	classFQN := h.classFQN
	ifaces := h.Interfaces()

	s.reanimate(h.instanceId)
	s.mu.Unlock()

	if wasDormant {
		logrus.WithFields(logrus.Fields{"instanceId": h.instanceId}).Debug("handle reanimated")
		s.emit(domain.EventRetained, h.instanceId)
	}

	return classFQN, p, ifaces, nil
}

// RefObject returns the wire reference for an already-managed instance.
func (s *ObjectStore) RefObject(instance interface{}) (domain.ObjectRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.byInstance[realObject(instance)]
	if !ok {
		return domain.ObjectRef{}, false
	}

	s.reanimate(h.instanceId)
	return h.ObjectReference(), true
}

// RegisterType attaches an FQN marker to a constructor value.
func (s *ObjectStore) RegisterType(ctor interface{}, fqn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typeMarker[ctor] = fqn
}

// TypeFQN recovers the most-specific FQN registered for a constructor.
func (s *ObjectStore) TypeFQN(ctor interface{}) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fqn, ok := s.typeMarker[ctor]
	return fqn, ok
}

// Delete removes a handle whose proxy is not live (§4.5). Enforced
// precondition: violating it is a programmer error, never a silent no-op.
func (s *ObjectStore) Delete(ref domain.ObjectRef) error {
	s.mu.Lock()

	h, ok := s.handles[ref.InstanceId]
	if !ok {
		s.mu.Unlock()
		return domain.NewError(domain.UnknownReference, "no handle for %q", ref.InstanceId)
	}

	if h.HasProxy() {
		s.mu.Unlock()
		return domain.NewError(domain.StillReachable, "%q still has a live proxy", ref.InstanceId)
	}

	delete(s.handles, h.instanceId)
	delete(s.byInstance, h.realReferent)
	delete(s.finalized, h.instanceId)
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{"instanceId": h.instanceId}).Info("object unmanaged")
	s.emit(domain.EventUnmanaged, h.instanceId)

	return nil
}

// FinalizedInstanceIds drains and returns the instance IDs whose proxy has
// been reported finalized since the last call (§4.5, §5 step 4).
func (s *ObjectStore) FinalizedInstanceIds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.finalized) == 0 {
		return nil
	}

	out := make([]string, 0, len(s.finalized))
	for id := range s.finalized {
		out = append(out, id)
		delete(s.finalized, id)
	}
	return out
}

// Stats reports a snapshot of store occupancy without mutating it.
func (s *ObjectStore) Stats() domain.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StoreStats{
		ManagedObjectCount:    len(s.handles),
		FinalizedPendingCount: len(s.finalized),
	}
}

// markReleasable is called by a proxy's finalization cleanup. It does
// nothing beyond set insertion and a non-blocking EventReleasable send: it
// may run on a reclamation goroutine with timing indeterminate relative to
// the event loop.
func (s *ObjectStore) markReleasable(instanceId string) {
	s.mu.Lock()
	s.finalized[instanceId] = true
	s.mu.Unlock()
	s.emit(domain.EventReleasable, instanceId)
}

// reanimate removes instanceId from the finalized set. Called with s.mu
// already held by Dereference and RefObject, so a handle that is handed
// back across the boundary never appears in the next release batch (§4.7).
func (s *ObjectStore) reanimate(instanceId string) {
	delete(s.finalized, instanceId)
}
