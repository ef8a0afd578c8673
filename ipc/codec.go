//
// Package ipc implements the §4.7/§6 protocol coupling between the kernel's
// object store and its host peer: the release notification, the del
// request/response, and the §5 single-threaded cooperative event loop that
// sequences them with ordinary request processing.
//
// The wire format is newline-delimited JSON, exactly as External Interfaces
// (§6) specifies — there is no gRPC transport here, unlike the teacher's
// container-lifecycle IPC (ipc/apis.go), because the spec mandates a plain
// JSON-line protocol over the child process's stdio channel.
//
package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize bounds a single JSON frame; generous enough for object
// references and release batches without risking unbounded memory growth
// from a misbehaving peer.
const maxLineSize = 16 * 1024 * 1024

// Codec reads and writes newline-delimited JSON frames over a channel.
type Codec struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
}

// NewCodec wraps r/w as the channel described in §5 ("Reading from the input
// channel; writing a response").
func NewCodec(r io.Reader, w io.Writer) *Codec {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Codec{
		scanner: scanner,
		writer:  bufio.NewWriter(w),
	}
}

// ReadFrame reads the next line and unmarshals it into v. Returns io.EOF
// when the channel is closed with no further input.
func (c *Codec) ReadFrame(v interface{}) error {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("ipc: read frame: %w", err)
		}
		return io.EOF
	}
	return json.Unmarshal(c.scanner.Bytes(), v)
}

// WriteFrame marshals v as a single JSON line and flushes it immediately —
// the peer must observe each frame as soon as it's written, not buffered
// behind the next one.
func (c *Codec) WriteFrame(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ipc: marshal frame: %w", err)
	}
	if _, err := c.writer.Write(b); err != nil {
		return fmt.Errorf("ipc: write frame: %w", err)
	}
	if err := c.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("ipc: write frame: %w", err)
	}
	return c.writer.Flush()
}
