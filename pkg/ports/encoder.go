package ports

import (
	"context"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
)

// VideoEncoder opens video containers for writing.
type VideoEncoder interface {
	// Open creates an encode handle for path. It fails instead of returning
	// a handle that cannot accept frames.
	Open(path string, c codec.Codec, fps float64, size frame.Size) (VideoWriter, error)
}

// VideoWriter is an open encode handle.
type VideoWriter interface {
	// WriteFrame appends one frame to the output.
	WriteFrame(f *frame.Frame) error

	// Close finalizes the output and releases the handle.
	Close() error
}

// GlobExport describes an image-sequence to video conversion.
type GlobExport struct {
	Pattern     string
	PatternType string // "glob", "sequence" or "none"
	FPS         float64
	OutputPath  string
	Overwrite   bool
}

// SequenceExporter turns a pattern of still images into a video container.
type SequenceExporter interface {
	ExportGlob(ctx context.Context, req GlobExport) error
}
