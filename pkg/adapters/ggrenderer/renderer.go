// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// margin is the distance in pixels between stamped text and the frame edge.
const margin = 8

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Resize scales a frame to size with Catmull-Rom interpolation.
// A frame already at size is returned as a copy.
func (r *Renderer) Resize(f *frame.Frame, size frame.Size) *frame.Frame {
	src := f.Image()
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	if f.Size() == size {
		draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	return frame.FromImage(dst)
}

// Stamp draws text along the bottom edge of a copy of the frame.
func (r *Renderer) Stamp(f *frame.Frame, text string, style ports.TextStyle) *frame.Frame {
	dc := gg.NewContextForRGBA(f.Image())

	// gg keeps its built-in face when the font cannot be loaded.
	if style.FontPath != "" {
		_ = dc.LoadFontFace(style.FontPath, style.FontSize)
	}

	var col color.Color = color.White
	if style.Color != nil {
		col = style.Color
	}

	w, h := float64(f.Width), float64(f.Height)
	x, ax := float64(margin), 0.0
	switch style.Align {
	case ports.AlignCenter:
		x, ax = w/2, 0.5
	case ports.AlignRight:
		x, ax = w-margin, 1.0
	}
	y := h - margin

	// Dark outline keeps light text readable on bright frames.
	dc.SetColor(color.Black)
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		dc.DrawStringAnchored(text, x+d[0], y+d[1], ax, 0)
	}
	dc.SetColor(col)
	dc.DrawStringAnchored(text, x, y, ax, 0)

	return frame.FromImage(dc.Image())
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
