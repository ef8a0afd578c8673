package kernel

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/yuth/jsii/domain"
)

type widget struct{ name string }

func newStoreForTest() *ObjectStore {
	return NewObjectStore(testResolver(), 0, 0)
}

func Test_ObjectStore_Register_new(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"a"}

	p, ref, err := s.Register("pkg.X", w, []string{"pkg.IB"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if ref.InstanceId == "" {
		t.Fatal("expected non-empty instance id")
	}
	if p.RealObject() != w {
		t.Errorf("proxy real object = %v, want %v", p.RealObject(), w)
	}
	if len(ref.Interfaces) != 1 || ref.Interfaces[0] != "pkg.IB" {
		t.Errorf("ref.Interfaces = %v, want [pkg.IB]", ref.Interfaces)
	}

	stats := s.Stats()
	if stats.ManagedObjectCount != 1 {
		t.Errorf("ManagedObjectCount = %d, want 1", stats.ManagedObjectCount)
	}
}

func Test_ObjectStore_Register_nilInstance(t *testing.T) {
	s := newStoreForTest()
	if _, _, err := s.Register("pkg.X", nil, nil); err == nil {
		t.Fatal("expected error registering nil instance")
	}
}

func Test_ObjectStore_Register_sameInstanceTwice_mergesInterfaces(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"a"}

	_, ref1, err := s.Register("pkg.X", w, []string{"pkg.IA"})
	if err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, ref2, err := s.Register("pkg.X", w, []string{"pkg.IB"})
	if err != nil {
		t.Fatalf("second Register() error = %v", err)
	}

	if ref1.InstanceId != ref2.InstanceId {
		t.Fatalf("re-registering the same object minted a new instance id: %q vs %q", ref1.InstanceId, ref2.InstanceId)
	}

	// pkg.IB extends pkg.IA, so only IB should remain declared.
	if len(ref2.Interfaces) != 1 || ref2.Interfaces[0] != "pkg.IB" {
		t.Errorf("ref2.Interfaces = %v, want [pkg.IB]", ref2.Interfaces)
	}

	if stats := s.Stats(); stats.ManagedObjectCount != 1 {
		t.Errorf("ManagedObjectCount = %d, want 1 (no duplicate handle)", stats.ManagedObjectCount)
	}
}

func Test_ObjectStore_Dereference_unknownReference(t *testing.T) {
	s := newStoreForTest()
	_, _, _, err := s.Dereference(domain.ObjectRef{InstanceId: "nope@1"})
	if err == nil {
		t.Fatal("expected error for unknown reference")
	}
	var kerr *domain.KernelError
	if !errors.As(err, &kerr) || kerr.Kind != domain.UnknownReference {
		t.Errorf("error = %v, want UnknownReference", err)
	}
}

func Test_ObjectStore_Dereference_roundtrip(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"a"}

	_, ref, err := s.Register("pkg.X", w, nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	classFQN, p, _, err := s.Dereference(ref)
	if err != nil {
		t.Fatalf("Dereference() error = %v", err)
	}
	if classFQN != "pkg.X" {
		t.Errorf("classFQN = %q, want pkg.X", classFQN)
	}
	if p.RealObject() != w {
		t.Errorf("dereferenced real object = %v, want %v", p.RealObject(), w)
	}
}

func Test_ObjectStore_Delete_stillReachable(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"a"}

	_, ref, _ := s.Register("pkg.X", w, nil)

	if err := s.Delete(ref); err == nil {
		t.Fatal("expected error deleting an object with a live proxy")
	}
}

func Test_ObjectStore_Delete_unknownReference(t *testing.T) {
	s := newStoreForTest()
	if err := s.Delete(domain.ObjectRef{InstanceId: "nope@1"}); err == nil {
		t.Fatal("expected error for unknown reference")
	}
}

func Test_ObjectStore_RegisterType_roundtrip(t *testing.T) {
	s := newStoreForTest()
	ctor := func() {}
	s.RegisterType(ctor, "pkg.X")

	fqn, ok := s.TypeFQN(ctor)
	if !ok || fqn != "pkg.X" {
		t.Errorf("TypeFQN() = (%q, %v), want (pkg.X, true)", fqn, ok)
	}
}

func Test_ObjectStore_finalization_marksReleasable(t *testing.T) {
	s := newStoreForTest()

	instanceId := registerAndDropProxy(t, s)

	waitForCondition(t, 2*time.Second, func() bool {
		ids := s.FinalizedInstanceIds()
		for _, id := range ids {
			if id == instanceId {
				return true
			}
		}
		return false
	})
}

// registerAndDropProxy registers an object in its own stack frame so the
// minted proxy becomes unreachable once the function returns. It does not
// collect; waitForCondition runs the GC. It returns the instance id to watch
// for.
func registerAndDropProxy(t *testing.T, s *ObjectStore) string {
	t.Helper()
	w := &widget{"doomed"}
	_, ref, err := s.Register("pkg.X", w, nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return ref.InstanceId
}

func waitForCondition(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.GC()
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never became true before timeout")
}

func Test_ObjectStore_RefObject_knownInstance(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"a"}

	_, wantRef, err := s.Register("pkg.X", w, nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	gotRef, ok := s.RefObject(w)
	if !ok {
		t.Fatal("expected RefObject to find the registered instance")
	}
	if gotRef.InstanceId != wantRef.InstanceId {
		t.Errorf("RefObject() instance id = %q, want %q", gotRef.InstanceId, wantRef.InstanceId)
	}
}

func Test_ObjectStore_RefObject_unknownInstance(t *testing.T) {
	s := newStoreForTest()
	if _, ok := s.RefObject(&widget{"never registered"}); ok {
		t.Error("RefObject() = true for an instance that was never registered")
	}
}

// Test_ObjectStore_Dereference_reanimation_flushesFinalized mirrors scenario
// 3 from the finalization-correctness walkthrough: once an instance's proxy
// has been observed finalized, re-dereferencing it must mint a fresh proxy
// and remove it from the next release batch, rather than letting it be
// reported released out from under the live proxy the caller now holds.
func Test_ObjectStore_Dereference_reanimation_flushesFinalized(t *testing.T) {
	s := newStoreForTest()

	instanceId := registerAndDropProxy(t, s)

	waitForCondition(t, 2*time.Second, func() bool {
		return s.Stats().FinalizedPendingCount > 0
	})

	if _, _, _, err := s.Dereference(domain.ObjectRef{InstanceId: instanceId}); err != nil {
		t.Fatalf("Dereference() error = %v", err)
	}

	for _, id := range s.FinalizedInstanceIds() {
		if id == instanceId {
			t.Fatalf("FinalizedInstanceIds() contains %q after reanimation via Dereference, want it flushed", instanceId)
		}
	}
}

// Test_ObjectStore_RefObject_reanimation_flushesFinalized is the same
// property as above, exercised through RefObject instead of Dereference:
// both are reanimation entry points and both must flush the finalized mark.
func Test_ObjectStore_RefObject_reanimation_flushesFinalized(t *testing.T) {
	s := newStoreForTest()
	w := &widget{"pinned"}

	_, ref, err := s.Register("pkg.X", w, nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	waitForCondition(t, 2*time.Second, func() bool {
		return s.Stats().FinalizedPendingCount > 0
	})

	if _, ok := s.RefObject(w); !ok {
		t.Fatal("RefObject() = false for a still-managed instance")
	}

	for _, id := range s.FinalizedInstanceIds() {
		if id == ref.InstanceId {
			t.Fatalf("FinalizedInstanceIds() contains %q after reanimation via RefObject, want it flushed", ref.InstanceId)
		}
	}
}
