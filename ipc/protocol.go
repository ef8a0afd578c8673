package ipc

import (
	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
)

// protocolService implements domain.ProtocolServiceIface: the del request
// handler and the release-notification drain, both driven by the store's
// own bookkeeping (§4.5, §4.7).
type protocolService struct {
	store domain.ObjectStoreIface
}

var _ domain.ProtocolServiceIface = (*protocolService)(nil)

// NewProtocolService builds a protocol service with no store attached;
// Setup must be called before use.
func NewProtocolService() *protocolService {
	return &protocolService{}
}

func (p *protocolService) Setup(store domain.ObjectStoreIface) {
	p.store = store
}

// HandleDel processes a del request (§6). The kernel responds with a
// success acknowledgment, or fails with UnknownReference or StillReachable —
// it never silently no-ops (§4.5 delete precondition).
func (p *protocolService) HandleDel(req domain.DelRequest) domain.DelResponse {
	err := p.store.Delete(req.ObjRef)
	if err == nil {
		logrus.WithField("instanceId", req.ObjRef.InstanceId).Info("del: handle removed")
		return domain.DelResponse{Ok: map[string]interface{}{}}
	}

	kerr, ok := err.(*domain.KernelError)
	if !ok {
		logrus.WithError(err).Error("del: unexpected error shape")
		return domain.DelResponse{Error: string(domain.InvalidType), Message: err.Error()}
	}

	logrus.WithFields(logrus.Fields{
		"instanceId": req.ObjRef.InstanceId,
		"kind":       kerr.Kind,
	}).Warn("del: rejected")

	return domain.DelResponse{Error: string(kerr.Kind), Message: kerr.Message}
}

// PendingRelease drains the store's finalized-instance-ID set and, if
// non-empty, returns the release notification that must be written before
// the next response (§4.7 ordering rule).
func (p *protocolService) PendingRelease() *domain.ReleaseNotification {
	ids := p.store.FinalizedInstanceIds()
	if len(ids) == 0 {
		return nil
	}
	return &domain.ReleaseNotification{Release: ids}
}
