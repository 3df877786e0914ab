package ports

import (
	"github.com/user/vidutil/pkg/frame"
)

// VideoInfo is container metadata reported without decoding frames.
type VideoInfo struct {
	FPS        float64
	FrameCount int // As reported by the container; may be 0 or inaccurate.
	Width      int
	Height     int
	Codec      string
}

// VideoDecoder opens video containers for frame-by-frame reading.
type VideoDecoder interface {
	// Open opens the container at path. The caller owns the returned reader
	// and must Close it.
	Open(path string) (VideoReader, error)
}

// VideoReader is an open decode handle.
type VideoReader interface {
	// ReadFrame returns the next frame in presentation order,
	// or io.EOF once the stream is exhausted.
	ReadFrame() (*frame.Frame, error)

	// Info returns the container metadata of the open stream.
	Info() VideoInfo

	// Close releases the handle.
	Close() error
}

// VideoProber answers metadata queries without materializing frames.
type VideoProber interface {
	Probe(path string) (VideoInfo, error)
}

// ImageReader decodes a single still image.
type ImageReader interface {
	ReadImage(path string) (*frame.Frame, error)
}
