package ggrenderer

import (
	"image/color"
	"testing"

	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

func fill(w, h int, v byte) *frame.Frame {
	f := frame.New(w, h, 3)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

func TestRenderer_Resize(t *testing.T) {
	r := New()

	resized := r.Resize(fill(100, 80, 200), frame.Size{Width: 50, Height: 40})

	if resized.Width != 50 || resized.Height != 40 {
		t.Errorf("expected 50x40, got %s", resized.Size())
	}
	if resized.Channels != 3 {
		t.Errorf("expected 3 channels, got %d", resized.Channels)
	}
	if c := resized.At(25, 20); absDiff(c.R, 200) > 2 || absDiff(c.B, 200) > 2 {
		t.Errorf("expected uniform color to survive scaling, got %v", c)
	}
}

func TestRenderer_ResizeSameSizeCopies(t *testing.T) {
	r := New()
	src := fill(10, 10, 7)

	out := r.Resize(src, src.Size())
	out.Pix[0] = 99

	if src.Pix[0] != 7 {
		t.Error("expected Resize to return a copy")
	}
}

func TestRenderer_Stamp(t *testing.T) {
	r := New()
	src := fill(200, 50, 0)

	style := ports.TextStyle{
		FontSize: 14,
		Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Align:    ports.AlignLeft,
	}
	stamped := r.Stamp(src, "frame 0001", style)

	if stamped.Size() != src.Size() {
		t.Fatalf("expected size %s, got %s", src.Size(), stamped.Size())
	}

	lit := false
	for _, b := range stamped.Pix {
		if b != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("expected text pixels in stamped frame")
	}
	for _, b := range src.Pix {
		if b != 0 {
			t.Fatal("expected source frame to be left untouched")
		}
	}
}

func TestRenderer_StampAlignments(t *testing.T) {
	r := New()

	for _, align := range []ports.TextAlign{ports.AlignLeft, ports.AlignCenter, ports.AlignRight} {
		out := r.Stamp(fill(120, 40, 0), "00:01", ports.TextStyle{Align: align})
		if out.Size() != (frame.Size{Width: 120, Height: 40}) {
			t.Errorf("align %d: unexpected size %s", align, out.Size())
		}
	}
}

func absDiff(a, b byte) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
