// Package frame defines the in-memory frame buffer shared by decoders,
// encoders and the vidutil core.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultChannels is the channel count produced by the bundled decoders.
const DefaultChannels = 3

var (
	// ErrEmptyFrame is returned when a frame has no pixels.
	ErrEmptyFrame = errors.New("frame: empty frame")

	// ErrBufferSize is returned when a packed buffer does not match its geometry.
	ErrBufferSize = errors.New("frame: buffer size mismatch")

	// ErrChannels is returned for a channel count that is neither gray nor color.
	ErrChannels = errors.New("frame: unsupported channel count")
)

// Size is a frame geometry in pixels. The zero value means "not supplied".
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether the size was left unset.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Frame is a dense, row-major grid of 8-bit samples.
// Channel order is whatever the producing decoder emits; the bundled ffmpeg
// based decoders emit RGB, the OpenCV engine emits BGR.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Sequence is an ordered, finite list of frames in display order.
type Sequence []*Frame

// New allocates a zeroed frame.
func New(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Size returns the frame geometry.
func (f *Frame) Size() Size {
	return Size{Width: f.Width, Height: f.Height}
}

// Stride returns the number of bytes in one row.
func (f *Frame) Stride() int {
	return f.Width * f.Channels
}

// Validate checks that the pixel buffer matches the declared geometry.
func (f *Frame) Validate() error {
	if f == nil || f.Width <= 0 || f.Height <= 0 || f.Channels <= 0 {
		return ErrEmptyFrame
	}
	if f.Channels == 2 {
		return fmt.Errorf("%w: %d", ErrChannels, f.Channels)
	}
	if len(f.Pix) != f.Width*f.Height*f.Channels {
		return fmt.Errorf("%w: %d bytes for %dx%dx%d", ErrBufferSize, len(f.Pix), f.Width, f.Height, f.Channels)
	}
	return nil
}

// FromPacked copies a packed buffer with depth bytes per pixel into a new
// 3-channel frame, dropping any trailing channels (alpha).
func FromPacked(width, height, depth int, buf []byte) (*Frame, error) {
	if width <= 0 || height <= 0 || depth < DefaultChannels {
		return nil, ErrEmptyFrame
	}
	if len(buf) < width*height*depth {
		return nil, fmt.Errorf("%w: %d bytes for %dx%dx%d", ErrBufferSize, len(buf), width, height, depth)
	}

	f := New(width, height, DefaultChannels)
	if depth == DefaultChannels {
		copy(f.Pix, buf)
		return f, nil
	}

	for i, j := 0, 0; j < len(f.Pix); i, j = i+depth, j+DefaultChannels {
		f.Pix[j] = buf[i]
		f.Pix[j+1] = buf[i+1]
		f.Pix[j+2] = buf[i+2]
	}
	return f, nil
}

// FromImage converts any image into a 3-channel RGB frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	// Cannot fail: geometry comes from the image itself.
	f, _ := FromPacked(bounds.Dx(), bounds.Dy(), 4, rgba.Pix)
	return f
}

// Image returns the frame as an RGBA image. Samples are interpreted as
// RGB regardless of the producing decoder. Frames with fewer than three
// channels are read as gray from their first channel.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	if f.Channels < DefaultChannels {
		if f.Channels <= 0 {
			return img
		}
		for i, j := 0, 0; i < len(f.Pix) && j < len(img.Pix); i, j = i+f.Channels, j+4 {
			v := f.Pix[i]
			img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = v, v, v, 255
		}
		return img
	}

	for i, j := 0, 0; i+2 < len(f.Pix) && j < len(img.Pix); i, j = i+f.Channels, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// At returns the color of the pixel at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	i := y*f.Stride() + x*f.Channels
	if f.Channels < DefaultChannels {
		return color.RGBA{R: f.Pix[i], G: f.Pix[i], B: f.Pix[i], A: 255}
	}
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 255}
}
