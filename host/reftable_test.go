package host

import (
	"reflect"
	"testing"

	"github.com/yuth/jsii/domain"
	"github.com/yuth/jsii/mocks"
)

func fakeProxy(id string) domain.HostProxyIface {
	m := &mocks.HostProxyIface{}
	m.On("InstanceId").Return(id)
	return m
}

func Test_ReferenceTable_TrackCreated_holdsStrong(t *testing.T) {
	tbl := NewReferenceTable()
	ref := domain.ObjectRef{InstanceId: "pkg.X@1"}
	tbl.TrackCreated(ref, fakeProxy("pkg.X@1"))

	rec, ok := tbl.Lookup("pkg.X@1")
	if !ok {
		t.Fatal("expected record to be tracked")
	}
	if !rec.HasStrong() {
		t.Error("host-created record should hold a strong ref")
	}
	if !rec.HasProxy() {
		t.Error("record should hold the proxy until dropped")
	}
}

func Test_ReferenceTable_TrackKernelOrigin_noStrong(t *testing.T) {
	tbl := NewReferenceTable()
	ref := domain.ObjectRef{InstanceId: "pkg.X@2"}
	tbl.TrackKernelOrigin(ref, fakeProxy("pkg.X@2"))

	rec, ok := tbl.Lookup("pkg.X@2")
	if !ok {
		t.Fatal("expected record to be tracked")
	}
	if rec.HasStrong() {
		t.Error("kernel-origin record must never hold a strong ref")
	}
}

func Test_ReferenceTable_HandleRelease_dropsStrong(t *testing.T) {
	tbl := NewReferenceTable()
	ref := domain.ObjectRef{InstanceId: "pkg.X@3"}
	tbl.TrackCreated(ref, fakeProxy("pkg.X@3"))

	tbl.HandleRelease([]string{"pkg.X@3"})

	rec, ok := tbl.Lookup("pkg.X@3")
	if !ok {
		t.Fatal("record should still exist after release, only the strong ref drops")
	}
	if rec.HasStrong() {
		t.Error("strong ref should be dropped after a matching release notification")
	}
}

func Test_ReferenceTable_HandleRelease_unknownIdIsNoop(t *testing.T) {
	tbl := NewReferenceTable()
	tbl.HandleRelease([]string{"nope@1"})
}

func Test_ReferenceTable_DropProxy_queuesOnlyWithoutStrong(t *testing.T) {
	tbl := NewReferenceTable()

	created := domain.ObjectRef{InstanceId: "pkg.X@4"}
	tbl.TrackCreated(created, fakeProxy("pkg.X@4"))
	tbl.DropProxy("pkg.X@4")
	if got := tbl.DrainFinalizedProxies(); got != nil {
		t.Errorf("host-created object with a live strong ref should not be queued, got %v", got)
	}

	kernelOrigin := domain.ObjectRef{InstanceId: "pkg.X@5"}
	tbl.TrackKernelOrigin(kernelOrigin, fakeProxy("pkg.X@5"))
	tbl.DropProxy("pkg.X@5")
	if got := tbl.DrainFinalizedProxies(); !reflect.DeepEqual(got, []string{"pkg.X@5"}) {
		t.Errorf("DrainFinalizedProxies() = %v, want [pkg.X@5]", got)
	}
}

func Test_ReferenceTable_DrainFinalizedProxies_clearsQueue(t *testing.T) {
	tbl := NewReferenceTable()
	ref := domain.ObjectRef{InstanceId: "pkg.X@6"}
	tbl.TrackKernelOrigin(ref, fakeProxy("pkg.X@6"))
	tbl.DropProxy("pkg.X@6")

	first := tbl.DrainFinalizedProxies()
	if len(first) != 1 {
		t.Fatalf("first drain = %v, want one entry", first)
	}
	if second := tbl.DrainFinalizedProxies(); second != nil {
		t.Errorf("second drain = %v, want nil", second)
	}
}

func Test_ReferenceTable_Forget_removesRecord(t *testing.T) {
	tbl := NewReferenceTable()
	ref := domain.ObjectRef{InstanceId: "pkg.X@7"}
	tbl.TrackKernelOrigin(ref, fakeProxy("pkg.X@7"))

	tbl.Forget("pkg.X@7")

	if _, ok := tbl.Lookup("pkg.X@7"); ok {
		t.Error("expected record to be gone after Forget")
	}
}
