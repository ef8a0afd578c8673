//
// jsii-host-sim is a minimal host-side driver: it spawns the jsii-kernel
// binary as a child process, asks it to create a handful of synthetic
// objects over the newline-JSON protocol, and exercises the host reference
// table's strong/weak bookkeeping against the release notifications and
// del acknowledgements the kernel sends back.
//
// It exists to give the host package's reference table something real to
// drive in this repo, the way a language binding would in production — the
// actual bindings (Python, Java, .NET, ...) are out of scope (spec §1).
//
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yuth/jsii/domain"
	"github.com/yuth/jsii/host"
	"github.com/yuth/jsii/ipc"
)

// simProxy is a minimal domain.HostProxyIface the simulator mints per
// registered reference.
type simProxy struct {
	instanceId string
}

func (p *simProxy) InstanceId() string { return p.instanceId }

// readResponse reads frames off codec until it finds the next frame that
// isn't a release notification, unmarshaling that one into out. A release
// notification can precede *any* response, not just a del's (§4.7 writes it
// before every response the event loop sends), so every reader on this side
// of the wire has to treat it as an out-of-band frame rather than assuming
// request N's reply is the very next line.
func readResponse(codec *ipc.Codec, table *host.ReferenceTable, out interface{}) error {
	for {
		var raw json.RawMessage
		if err := codec.ReadFrame(&raw); err != nil {
			return err
		}

		var rel domain.ReleaseNotification
		if err := json.Unmarshal(raw, &rel); err == nil && len(rel.Release) > 0 {
			table.HandleRelease(rel.Release)
			logrus.Infof("release received for %v", rel.Release)
			continue
		}

		return json.Unmarshal(raw, out)
	}
}

func main() {
	kernelPath := flag.String("kernel", "jsii-kernel", "path to the jsii-kernel binary")
	count := flag.Int("objects", 3, "number of synthetic objects to create and release")
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)

	cmd := exec.Command(*kernelPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		logrus.Fatalf("stdin pipe: %v", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logrus.Fatalf("stdout pipe: %v", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		logrus.Fatalf("starting %s: %v", *kernelPath, err)
	}

	codec := ipc.NewCodec(stdout, stdin)

	var hello domain.HelloFrame
	if err := codec.ReadFrame(&hello); err != nil {
		logrus.Fatalf("reading hello frame: %v", err)
	}
	logrus.Infof("kernel greeted: %+v", hello)

	table := host.NewReferenceTable()

	for i := 0; i < *count; i++ {
		createReq := domain.CreateRequest{API: "create", FQN: "pkg.Widget"}
		if err := codec.WriteFrame(createReq); err != nil {
			logrus.Fatalf("writing create request: %v", err)
		}

		var createResp domain.CreateResponse
		if err := readResponse(codec, table, &createResp); err != nil {
			if err == io.EOF {
				break
			}
			logrus.Fatalf("reading create response: %v", err)
		}
		if createResp.Error != "" || createResp.ObjRef == nil {
			logrus.Warnf("create rejected: %s: %s", createResp.Error, createResp.Message)
			continue
		}

		ref := *createResp.ObjRef
		table.TrackKernelOrigin(ref, &simProxy{instanceId: ref.InstanceId})
		logrus.Infof("created %s, tracked as kernel-origin", ref.InstanceId)

		table.DropProxy(ref.InstanceId)

		for _, id := range table.DrainFinalizedProxies() {
			deleteWithRetry(codec, table, id)
		}
	}

	exitReq := json.RawMessage(`{"api":"exit"}`)
	if err := codec.WriteFrame(&exitReq); err != nil {
		logrus.Warnf("writing exit request: %v", err)
	}

	if err := cmd.Wait(); err != nil {
		logrus.Warnf("kernel process exited with: %v", err)
	}
}

// deleteWithRetry issues a del request for id, retrying with a short backoff
// on StillReachable — a legitimate outcome (spec §8 scenario 5) when the
// kernel-side proxy hasn't been collected yet, not a fatal protocol error.
func deleteWithRetry(codec *ipc.Codec, table *host.ReferenceTable, id string) {
	const maxAttempts = 5
	backoff := 20 * time.Millisecond

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req := domain.DelRequest{API: "del", ObjRef: domain.ObjectRef{InstanceId: id}}
		if err := codec.WriteFrame(req); err != nil {
			logrus.Fatalf("writing del request: %v", err)
		}

		var resp domain.DelResponse
		if err := readResponse(codec, table, &resp); err != nil {
			if err == io.EOF {
				return
			}
			logrus.Fatalf("reading del response: %v", err)
		}

		if resp.Error == "" {
			table.Forget(id)
			logrus.Infof("del %s acknowledged, forgotten", id)
			return
		}

		if resp.Error != string(domain.StillReachable) || attempt == maxAttempts {
			logrus.Warnf("del %s rejected: %s: %s", id, resp.Error, resp.Message)
			return
		}

		logrus.Infof("del %s still reachable, retrying (%d/%d)", id, attempt, maxAttempts)
		time.Sleep(backoff)
		backoff *= 2
	}
}
