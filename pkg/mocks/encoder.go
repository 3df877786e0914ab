package mocks

import (
	"context"
	"sync"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
// Opened writers record the frames they receive.
type VideoEncoder struct {
	OpenFunc func(path string, c codec.Codec, fps float64, size frame.Size) (ports.VideoWriter, error)

	// Recorded calls for verification
	OpenCalls []OpenCall
	Writers   []*VideoWriter
}

// OpenCall records a call to Open.
type OpenCall struct {
	Path  string
	Codec codec.Codec
	FPS   float64
	Size  frame.Size
}

func (m *VideoEncoder) Open(path string, c codec.Codec, fps float64, size frame.Size) (ports.VideoWriter, error) {
	m.OpenCalls = append(m.OpenCalls, OpenCall{Path: path, Codec: c, FPS: fps, Size: size})
	if m.OpenFunc != nil {
		return m.OpenFunc(path, c, fps, size)
	}
	w := &VideoWriter{}
	m.Writers = append(m.Writers, w)
	return w, nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)

// VideoWriter is a mock implementation of ports.VideoWriter.
type VideoWriter struct {
	WriteFrameFunc func(f *frame.Frame) error
	CloseFunc      func() error

	Frames     frame.Sequence
	CloseCalls int
}

func (m *VideoWriter) WriteFrame(f *frame.Frame) error {
	if m.WriteFrameFunc != nil {
		if err := m.WriteFrameFunc(f); err != nil {
			return err
		}
	}
	m.Frames = append(m.Frames, f)
	return nil
}

func (m *VideoWriter) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.VideoWriter = (*VideoWriter)(nil)

// SequenceExporter is a mock implementation of ports.SequenceExporter.
type SequenceExporter struct {
	ExportGlobFunc func(ctx context.Context, req ports.GlobExport) error

	mu    sync.Mutex
	Calls []ports.GlobExport
}

func (m *SequenceExporter) ExportGlob(ctx context.Context, req ports.GlobExport) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()
	if m.ExportGlobFunc != nil {
		return m.ExportGlobFunc(ctx, req)
	}
	return nil
}

var _ ports.SequenceExporter = (*SequenceExporter)(nil)
