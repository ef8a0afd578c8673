package ipc

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
)

type frame struct {
	API string `json:"api"`
	N   int    `json:"n"`
}

func Test_Codec_WriteThenRead_roundtrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCodec(nil, &buf)
	if err := w.WriteFrame(frame{API: "del", N: 1}); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	if err := w.WriteFrame(frame{API: "del", N: 2}); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	r := NewCodec(bytes.NewReader(buf.Bytes()), nil)
	var got frame
	if err := r.ReadFrame(&got); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.N != 1 {
		t.Errorf("first frame N = %d, want 1", got.N)
	}
	if err := r.ReadFrame(&got); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.N != 2 {
		t.Errorf("second frame N = %d, want 2", got.N)
	}
}

func Test_Codec_ReadFrame_eofOnExhaustion(t *testing.T) {
	r := NewCodec(bytes.NewReader(nil), nil)
	var got frame
	if err := r.ReadFrame(&got); err != io.EOF {
		t.Errorf("ReadFrame() error = %v, want io.EOF", err)
	}
}

func Test_Codec_WriteFrame_oneFramePerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewCodec(nil, &buf)
	w.WriteFrame(frame{API: "a"})
	w.WriteFrame(frame{API: "b"})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	var f frame
	if err := json.Unmarshal(lines[0], &f); err != nil || f.API != "a" {
		t.Errorf("line 0 = %q, want api=a", lines[0])
	}
}
