package kernel

import "github.com/yuth/jsii/domain"

// proxy is the user-visible wrapper minted by a handle (§4.4). It carries a
// hidden reference to the real referent so realObject() can recover identity
// when a proxy is handed back in as an argument. It holds no reference back
// to its owning handle: liveness of the proxy is observed by the handle
// through a weak.Pointer, never the other way around.
type proxy struct {
	instanceId string
	real       interface{}
}

var _ domain.ProxyIface = (*proxy)(nil)

func (p *proxy) InstanceId() string      { return p.instanceId }
func (p *proxy) RealObject() interface{} { return p.real }

// realObject returns the hidden referent slot if x is a known proxy, else x
// itself. This is the key used against byInstance when the host hands a
// proxy back in as an argument.
func realObject(x interface{}) interface{} {
	if p, ok := x.(*proxy); ok {
		return p.real
	}
	return x
}
