package ports

import "context"

// MuxRequest describes an audio/video merge.
// An empty AudioPath produces a video-only output.
type MuxRequest struct {
	AudioPath  string
	VideoPath  string
	OutputPath string
	AudioCodec string
	VideoCodec string
	Strict     string
}

// Muxer combines separate audio and video streams into one container.
type Muxer interface {
	Mux(ctx context.Context, req MuxRequest) error
}

// MemoryReporter reports the resident set size of the current process.
// It is advisory only.
type MemoryReporter interface {
	ResidentSetSize() (uint64, error)
}
