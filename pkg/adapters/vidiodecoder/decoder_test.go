package vidiodecoder

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/vidutil/pkg/adapters/ffmpeg"
	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
)

func requireTools(t *testing.T) {
	t.Helper()
	if !ffmpeg.IsAvailable() {
		t.Skip("ffmpeg not available")
	}
	if _, err := ffmpeg.FindFFprobe(""); err != nil {
		t.Skip("ffprobe not available")
	}
}

func TestDecoder_OpenMissing(t *testing.T) {
	requireTools(t)

	_, err := New().Open(filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecoder_ReadsEncodedFrames(t *testing.T) {
	requireTools(t)

	path := filepath.Join(t.TempDir(), "clip.mp4")
	w, err := ffmpeg.NewEncoder(ffmpeg.Options{}).Open(path, codec.Default(), 5, frame.Size{Width: 32, Height: 16})
	if err != nil {
		t.Fatalf("Open encoder failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := w.WriteFrame(frame.New(32, 16, 3)); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close encoder failed: %v", err)
	}

	d := New()
	info, err := d.Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Width != 32 || info.Height != 16 || info.FPS != 5 {
		t.Errorf("unexpected info: %+v", info)
	}

	r, err := d.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	n := 0
	for {
		f, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrame failed: %v", err)
		}
		if f.Channels != 3 || f.Size() != (frame.Size{Width: 32, Height: 16}) {
			t.Errorf("unexpected frame geometry %s x%d", f.Size(), f.Channels)
		}
		n++
	}
	if n != 3 {
		t.Errorf("expected 3 frames, got %d", n)
	}

	if err := r.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := r.ReadFrame(); !errors.Is(err, ErrReaderClosed) {
		t.Errorf("expected ErrReaderClosed, got %v", err)
	}
}

func TestDecoder_ReadImage(t *testing.T) {
	requireTools(t)

	path := filepath.Join(t.TempDir(), "still.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	got, err := New().ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage failed: %v", err)
	}
	if got.Size() != (frame.Size{Width: 4, Height: 2}) {
		t.Errorf("unexpected size %s", got.Size())
	}
	if got.At(0, 0) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red pixel, got %v", got.At(0, 0))
	}
}
