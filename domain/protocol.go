package domain

// ReleaseNotification is the kernel -> host one-way frame piggybacked
// immediately before a request's response (§4.7, §6).
type ReleaseNotification struct {
	Release []string `json:"release"`
}

// DelRequest is the host -> kernel frame asking that an instance ID be
// removed from the store.
type DelRequest struct {
	API    string    `json:"api"`
	ObjRef ObjectRef `json:"objref"`
}

// DelResponse is the kernel's reply to a DelRequest: either Ok is non-nil, or
// Error/Message are set. Ok is an interface so that a non-nil empty map is
// still written as "ok": {} (omitempty drops only a nil interface).
type DelResponse struct {
	Ok      interface{} `json:"ok,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// HelloFrame is the greeting the kernel emits before reading its first
// request (§5 step 1).
type HelloFrame struct {
	Hello string `json:"hello"`
}

// CreateRequest is the host -> kernel frame asking the kernel to instantiate
// FQN and register the result. The real constructor/type-loader machinery
// behind "create" is out of scope (§1); what this subsystem owns is the
// registration that follows it, the same way `del` only owns removal.
type CreateRequest struct {
	API        string   `json:"api"`
	FQN        string   `json:"fqn"`
	Interfaces []string `json:"interfaces,omitempty"`
}

// CreateResponse is the kernel's reply to a CreateRequest: either ObjRef is
// set, or Error/Message are.
type CreateResponse struct {
	ObjRef  *ObjectRef `json:"objref,omitempty"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ProtocolServiceIface is the exposed surface of the §4.7/§5 protocol
// coupling: draining release notifications and handling del requests against
// an ObjectStoreIface.
type ProtocolServiceIface interface {
	Setup(store ObjectStoreIface)

	// HandleDel processes a DelRequest and returns the response frame.
	HandleDel(req DelRequest) DelResponse

	// PendingRelease returns the release notification to write before the
	// next response, or nil if there is nothing to report.
	PendingRelease() *ReleaseNotification
}
