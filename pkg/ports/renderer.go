package ports

import (
	"image/color"

	"github.com/user/vidutil/pkg/frame"
)

// Renderer applies caller-side transforms to frames between load and save.
type Renderer interface {
	// Resize scales a frame to the given size.
	Resize(f *frame.Frame, size frame.Size) *frame.Frame

	// Stamp draws text onto a copy of the frame.
	Stamp(f *frame.Frame, text string, style TextStyle) *frame.Frame
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)
