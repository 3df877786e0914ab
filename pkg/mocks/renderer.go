package mocks

import (
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	ResizeFunc func(f *frame.Frame, size frame.Size) *frame.Frame
	StampFunc  func(f *frame.Frame, text string, style ports.TextStyle) *frame.Frame

	StampCalls []string
}

func (m *Renderer) Resize(f *frame.Frame, size frame.Size) *frame.Frame {
	if m.ResizeFunc != nil {
		return m.ResizeFunc(f, size)
	}
	return frame.New(size.Width, size.Height, f.Channels)
}

func (m *Renderer) Stamp(f *frame.Frame, text string, style ports.TextStyle) *frame.Frame {
	m.StampCalls = append(m.StampCalls, text)
	if m.StampFunc != nil {
		return m.StampFunc(f, text, style)
	}
	return f
}

var _ ports.Renderer = (*Renderer)(nil)
