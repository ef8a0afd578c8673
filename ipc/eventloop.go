package ipc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
)

// RequestHandler processes request kinds outside the object store's scope
// (invoke, create, and friends — the type/assembly loader's territory per
// spec §1). The event loop always handles "del" itself; anything else is
// routed here if a handler is supplied, otherwise rejected.
type RequestHandler interface {
	Handle(api string, raw json.RawMessage) (response interface{}, err error)
}

// CallbackBroker lets a request handler issue a nested "callback" request to
// the host mid-processing and block for its ok/exception response, modeling
// §5's suspension point: "nested callback requests...during which the
// kernel awaits an ok or exception response before resuming the outer
// request." The depth counter is a stack-disciplined nesting guard, a
// supplement the distilled spec describes only in prose (§5) without naming
// a component for it.
type CallbackBroker struct {
	codec *Codec
	depth int
}

// NewCallbackBroker builds a broker writing nested requests over codec.
func NewCallbackBroker(codec *Codec) *CallbackBroker {
	return &CallbackBroker{codec: codec}
}

// Depth reports how many callback requests are currently outstanding.
func (b *CallbackBroker) Depth() int {
	return b.depth
}

// Invoke writes request, then blocks reading the matching response into
// response. The single-threaded cooperative model makes this safe: nothing
// else touches the codec while a callback is outstanding.
func (b *CallbackBroker) Invoke(request, response interface{}) error {
	b.depth++
	defer func() { b.depth-- }()

	if err := b.codec.WriteFrame(request); err != nil {
		return fmt.Errorf("ipc: callback request: %w", err)
	}
	if err := b.codec.ReadFrame(response); err != nil {
		return fmt.Errorf("ipc: callback response: %w", err)
	}
	return nil
}

// EventLoop runs the §5 single-threaded cooperative kernel loop:
//
//  1. Emit a hello greeting.
//  2. Read the next request; exit on "exit".
//  3. Process the request (object-store "del", or a supplied RequestHandler
//     for anything else).
//  4. Drain outstanding release notifications and write them, if any.
//  5. Write the response.
//  6. Return to step 2.
type EventLoop struct {
	codec    *Codec
	protocol domain.ProtocolServiceIface
	extra    RequestHandler
	Broker   *CallbackBroker
}

// NewEventLoop wires a codec, the object-store protocol service, and an
// optional handler for request kinds the object store doesn't own.
func NewEventLoop(codec *Codec, protocol domain.ProtocolServiceIface, extra RequestHandler) *EventLoop {
	return &EventLoop{
		codec:    codec,
		protocol: protocol,
		extra:    extra,
		Broker:   NewCallbackBroker(codec),
	}
}

// apiEnvelope is decoded first to discover the request kind; the full frame
// is re-decoded against the specific request type once it's known.
type apiEnvelope struct {
	API string `json:"api"`
}

// Run executes the loop until "exit" is received or the input channel
// closes. It returns nil on either clean termination.
func (e *EventLoop) Run() error {
	if err := e.codec.WriteFrame(domain.HelloFrame{Hello: "hello"}); err != nil {
		return fmt.Errorf("ipc: hello: %w", err)
	}

	for {
		var raw json.RawMessage
		if err := e.codec.ReadFrame(&raw); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("ipc: read request: %w", err)
		}

		var envelope apiEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("ipc: decode envelope: %w", err)
		}

		if envelope.API == "exit" {
			logrus.Debug("ipc: exit received")
			return nil
		}

		response, err := e.dispatch(envelope.API, raw)
		if err != nil {
			return err
		}

		// Ordering rule (§4.7): outstanding release notifications must be
		// written after processing the request but before its response.
		if rel := e.protocol.PendingRelease(); rel != nil {
			if err := e.codec.WriteFrame(rel); err != nil {
				return fmt.Errorf("ipc: write release: %w", err)
			}
		}

		if err := e.codec.WriteFrame(response); err != nil {
			return fmt.Errorf("ipc: write response: %w", err)
		}
	}
}

func (e *EventLoop) dispatch(api string, raw json.RawMessage) (interface{}, error) {
	switch api {
	case "del":
		var req domain.DelRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("ipc: decode del request: %w", err)
		}
		return e.protocol.HandleDel(req), nil

	default:
		if e.extra != nil {
			return e.extra.Handle(api, raw)
		}
		return domain.DelResponse{
			Error:   string(domain.InvalidType),
			Message: fmt.Sprintf("unsupported api %q", api),
		}, nil
	}
}
