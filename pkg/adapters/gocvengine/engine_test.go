//go:build gocv

package gocvengine

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
)

func TestEngine_WriteThenRead(t *testing.T) {
	e := New()
	out := filepath.Join(t.TempDir(), "out.avi")
	size := frame.Size{Width: 64, Height: 48}

	w, err := e.OpenWriter(out, codec.Named("MJPG"), 10, size)
	if err != nil {
		t.Fatalf("OpenWriter failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := w.WriteFrame(frame.New(64, 48, 3)); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := e.Probe(out)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.FrameCount != 4 || info.Width != 64 {
		t.Errorf("unexpected info: %+v", info)
	}

	r, err := e.Open(out)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	n := 0
	for {
		f, err := r.ReadFrame()
		if err != nil {
			break
		}
		if f.Size() != size {
			t.Errorf("frame %d: unexpected size %s", n, f.Size())
		}
		n++
	}
	if n != 4 {
		t.Errorf("expected 4 frames, got %d", n)
	}
}

func TestEngine_RejectsRawMode(t *testing.T) {
	_, err := New().OpenWriter(filepath.Join(t.TempDir(), "x.avi"), codec.ModeStillImages, 10, frame.Size{Width: 2, Height: 2})
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}
}

func TestEngine_OpenMissing(t *testing.T) {
	if _, err := New().Open(filepath.Join(t.TempDir(), "missing.mp4")); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}
