package frame

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFromPacked_DropsAlpha(t *testing.T) {
	buf := []byte{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 255,
	}

	f, err := FromPacked(2, 2, 4, buf)
	if err != nil {
		t.Fatalf("FromPacked failed: %v", err)
	}

	if f.Channels != 3 {
		t.Errorf("expected 3 channels, got %d", f.Channels)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if string(f.Pix) != string(want) {
		t.Errorf("expected %v, got %v", want, f.Pix)
	}
}

func TestFromPacked_RGBCopies(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}

	f, err := FromPacked(2, 1, 3, buf)
	if err != nil {
		t.Fatalf("FromPacked failed: %v", err)
	}

	buf[0] = 99
	if f.Pix[0] != 1 {
		t.Error("frame must not alias the source buffer")
	}
}

func TestFromPacked_ShortBuffer(t *testing.T) {
	_, err := FromPacked(4, 4, 3, make([]byte, 10))
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 14, 13))
	img.Set(10, 10, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	f := FromImage(img)

	if f.Width != 4 || f.Height != 3 {
		t.Fatalf("expected 4x3, got %dx%d", f.Width, f.Height)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	got := f.At(0, 0)
	if got.R != 200 || got.G != 100 || got.B != 50 {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestImage_RoundTrip(t *testing.T) {
	f := New(3, 2, 3)
	for i := range f.Pix {
		f.Pix[i] = byte(i * 10)
	}

	back := FromImage(f.Image())

	if string(back.Pix) != string(f.Pix) {
		t.Errorf("round trip mismatch: %v vs %v", back.Pix, f.Pix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		frame   *Frame
		wantErr error
	}{
		{"nil", nil, ErrEmptyFrame},
		{"zero width", &Frame{Height: 1, Channels: 3}, ErrEmptyFrame},
		{"short pix", &Frame{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 3)}, ErrBufferSize},
		{"two channels", New(2, 2, 2), ErrChannels},
		{"gray", New(2, 2, 1), nil},
		{"rgba", New(2, 2, 4), nil},
		{"ok", New(2, 2, 3), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestImage_FewChannels(t *testing.T) {
	f := New(2, 1, 2)
	copy(f.Pix, []byte{10, 200, 30, 200})

	img := f.Image()
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 30, G: 30, B: 30, A: 255}) {
		t.Errorf("expected gray from first channel, got %v", got)
	}
	if got := f.At(0, 0); got != (color.RGBA{R: 10, G: 10, B: 10, A: 255}) {
		t.Errorf("expected gray at (0,0), got %v", got)
	}

	short := &Frame{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 4)}
	if img := short.Image(); img.Bounds().Dx() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestSize_IsZero(t *testing.T) {
	if !(Size{}).IsZero() {
		t.Error("zero Size should report IsZero")
	}
	if (Size{Width: 1}).IsZero() {
		t.Error("non-zero Size should not report IsZero")
	}
	if got := (Size{Width: 640, Height: 480}).String(); got != "640x480" {
		t.Errorf("unexpected String: %s", got)
	}
}
