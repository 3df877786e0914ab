package mocks

import (
	"fmt"
	"io"

	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder and
// ports.VideoProber backed by in-memory sequences keyed by path.
type VideoDecoder struct {
	Videos map[string]frame.Sequence
	Infos  map[string]ports.VideoInfo

	OpenFunc  func(path string) (ports.VideoReader, error)
	ProbeFunc func(path string) (ports.VideoInfo, error)

	Readers []*VideoReader
}

// NewVideoDecoder creates a new mock VideoDecoder.
func NewVideoDecoder() *VideoDecoder {
	return &VideoDecoder{
		Videos: make(map[string]frame.Sequence),
		Infos:  make(map[string]ports.VideoInfo),
	}
}

func (m *VideoDecoder) Open(path string) (ports.VideoReader, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	frames, ok := m.Videos[path]
	if !ok {
		return nil, fmt.Errorf("video not found: %s", path)
	}
	r := &VideoReader{Frames: frames, VideoInfo: m.Infos[path]}
	m.Readers = append(m.Readers, r)
	return r, nil
}

func (m *VideoDecoder) Probe(path string) (ports.VideoInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	info, ok := m.Infos[path]
	if !ok {
		return ports.VideoInfo{}, fmt.Errorf("video not found: %s", path)
	}
	return info, nil
}

var (
	_ ports.VideoDecoder = (*VideoDecoder)(nil)
	_ ports.VideoProber  = (*VideoDecoder)(nil)
)

// VideoReader is a mock implementation of ports.VideoReader.
type VideoReader struct {
	Frames    frame.Sequence
	VideoInfo ports.VideoInfo
	// FailAt makes ReadFrame return Err at that index when Err is set.
	FailAt int
	Err    error

	pos    int
	Closed bool
}

func (m *VideoReader) ReadFrame() (*frame.Frame, error) {
	if m.Err != nil && m.pos == m.FailAt {
		return nil, m.Err
	}
	if m.pos >= len(m.Frames) {
		return nil, io.EOF
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, nil
}

func (m *VideoReader) Info() ports.VideoInfo {
	return m.VideoInfo
}

func (m *VideoReader) Close() error {
	m.Closed = true
	return nil
}

var _ ports.VideoReader = (*VideoReader)(nil)

// ImageReader is a mock implementation of ports.ImageReader.
type ImageReader struct {
	Images        map[string]*frame.Frame
	ReadImageFunc func(path string) (*frame.Frame, error)

	Calls []string
}

// NewImageReader creates a new mock ImageReader.
func NewImageReader() *ImageReader {
	return &ImageReader{Images: make(map[string]*frame.Frame)}
}

func (m *ImageReader) ReadImage(path string) (*frame.Frame, error) {
	m.Calls = append(m.Calls, path)
	if m.ReadImageFunc != nil {
		return m.ReadImageFunc(path)
	}
	f, ok := m.Images[path]
	if !ok {
		return nil, fmt.Errorf("image not found: %s", path)
	}
	return f, nil
}

var _ ports.ImageReader = (*ImageReader)(nil)
