package ipc

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
)

// createdInstance is the opaque referent the kernel allocates for a "create"
// request when no real type/assembly loader is wired in (§1, out of scope).
// The object store never inspects it; it only needs a distinct pointer
// identity per instance.
type createdInstance struct {
	fqn string
}

// CreateHandler implements the kernel side of a "create" request: instantiate
// FQN (synthetically, absent a real type loader) and register the result with
// the object store, returning its wire reference. Wired as the
// ipc.EventLoop's "extra" RequestHandler so "del" (handled natively by
// protocolService) and "create" (handled here) share one dispatch path, the
// way the teacher's main.go wires a single request-routing surface.
type CreateHandler struct {
	Store domain.ObjectStoreIface
}

var _ RequestHandler = (*CreateHandler)(nil)

func (h *CreateHandler) Handle(api string, raw json.RawMessage) (interface{}, error) {
	if api != "create" {
		return domain.CreateResponse{
			Error:   string(domain.InvalidType),
			Message: fmt.Sprintf("unsupported api %q", api),
		}, nil
	}

	var req domain.CreateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("ipc: decode create request: %w", err)
	}

	instance := &createdInstance{fqn: req.FQN}
	_, ref, err := h.Store.Register(req.FQN, instance, req.Interfaces)
	if err != nil {
		kerr, ok := err.(*domain.KernelError)
		if !ok {
			logrus.WithError(err).Error("create: unexpected error shape")
			return domain.CreateResponse{Error: string(domain.InvalidType), Message: err.Error()}, nil
		}
		logrus.WithFields(logrus.Fields{"fqn": req.FQN, "kind": kerr.Kind}).Warn("create: rejected")
		return domain.CreateResponse{Error: string(kerr.Kind), Message: kerr.Message}, nil
	}

	logrus.WithFields(logrus.Fields{"instanceId": ref.InstanceId, "fqn": req.FQN}).Info("create: object registered")

	// Register() hands back a live proxy so the caller (ordinarily
	// kernel-side user code holding it across the call) can use it; nothing
	// here retains it, since the synthesized instance has no such caller.
	// Nudging a collection now is what makes the proxy's unreachability —
	// and the release notification that follows from it — observable on a
	// predictable schedule instead of waiting on the next incidental GC.
	runtime.GC()

	return domain.CreateResponse{ObjRef: &ref}, nil
}
