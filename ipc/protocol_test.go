package ipc

import (
	"errors"
	"testing"

	"github.com/yuth/jsii/domain"
	"github.com/yuth/jsii/mocks"
)

func Test_protocolService_HandleDel_success(t *testing.T) {
	store := &mocks.ObjectStoreIface{}
	ref := domain.ObjectRef{InstanceId: "pkg.X@1"}
	store.On("Delete", ref).Return(nil)

	p := NewProtocolService()
	p.Setup(store)

	resp := p.HandleDel(domain.DelRequest{ObjRef: ref})
	if resp.Ok == nil {
		t.Errorf("resp.Ok = nil, want non-nil on success")
	}
	if resp.Error != "" {
		t.Errorf("resp.Error = %q, want empty", resp.Error)
	}
	store.AssertExpectations(t)
}

func Test_protocolService_HandleDel_stillReachable(t *testing.T) {
	store := &mocks.ObjectStoreIface{}
	ref := domain.ObjectRef{InstanceId: "pkg.X@2"}
	store.On("Delete", ref).Return(domain.NewError(domain.StillReachable, "still has a live proxy"))

	p := NewProtocolService()
	p.Setup(store)

	resp := p.HandleDel(domain.DelRequest{ObjRef: ref})
	if resp.Error != string(domain.StillReachable) {
		t.Errorf("resp.Error = %q, want %q", resp.Error, domain.StillReachable)
	}
	if resp.Ok != nil {
		t.Errorf("resp.Ok = %v, want nil on failure", resp.Ok)
	}
}

func Test_protocolService_HandleDel_nonKernelError(t *testing.T) {
	store := &mocks.ObjectStoreIface{}
	ref := domain.ObjectRef{InstanceId: "pkg.X@3"}
	store.On("Delete", ref).Return(errors.New("boom"))

	p := NewProtocolService()
	p.Setup(store)

	resp := p.HandleDel(domain.DelRequest{ObjRef: ref})
	if resp.Message != "boom" {
		t.Errorf("resp.Message = %q, want boom", resp.Message)
	}
}

func Test_protocolService_PendingRelease_nilWhenEmpty(t *testing.T) {
	store := &mocks.ObjectStoreIface{}
	store.On("FinalizedInstanceIds").Return([]string(nil))

	p := NewProtocolService()
	p.Setup(store)

	if got := p.PendingRelease(); got != nil {
		t.Errorf("PendingRelease() = %v, want nil", got)
	}
}

func Test_protocolService_PendingRelease_drainsFinalized(t *testing.T) {
	store := &mocks.ObjectStoreIface{}
	store.On("FinalizedInstanceIds").Return([]string{"pkg.X@4", "pkg.X@5"})

	p := NewProtocolService()
	p.Setup(store)

	got := p.PendingRelease()
	if got == nil {
		t.Fatal("PendingRelease() = nil, want a notification")
	}
	if len(got.Release) != 2 {
		t.Errorf("Release = %v, want 2 entries", got.Release)
	}
}
