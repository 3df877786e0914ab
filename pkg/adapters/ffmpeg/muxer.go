package ffmpeg

import (
	"context"

	"github.com/user/vidutil/pkg/ports"
)

// Muxer implements ports.Muxer by invoking ffmpeg.
type Muxer struct {
	opts Options
	log  ports.Logger
}

// NewMuxer creates a new ffmpeg-based muxer.
func NewMuxer(opts Options) *Muxer {
	return &Muxer{opts: opts, log: opts.logger("ffmpeg-mux")}
}

// Mux copies the video stream of req.VideoPath and re-encodes the audio of
// req.AudioPath into req.OutputPath, overwriting it.
func (m *Muxer) Mux(ctx context.Context, req ports.MuxRequest) error {
	ffmpegPath, err := FindFFmpeg(m.opts.FFmpegPath)
	if err != nil {
		return err
	}

	args := muxArgs(req)
	m.log.Debug("Running ffmpeg %v", args)

	_, err = run(ctx, ffmpegPath, args...)
	return err
}

// muxArgs builds the ffmpeg command line. Audio is input 0 and video is
// input 1 when both are present.
func muxArgs(req ports.MuxRequest) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}

	if req.AudioPath != "" {
		args = append(args,
			"-i", req.AudioPath,
			"-i", req.VideoPath,
			"-map", "0:a",
			"-map", "1:v",
		)
	} else {
		args = append(args,
			"-i", req.VideoPath,
			"-map", "0:v",
		)
	}

	if req.AudioPath != "" && req.AudioCodec != "" {
		args = append(args, "-acodec", req.AudioCodec)
	}
	if req.VideoCodec != "" {
		args = append(args, "-vcodec", req.VideoCodec)
	}
	if req.Strict != "" {
		args = append(args, "-strict", req.Strict)
	}

	return append(args, req.OutputPath)
}

var _ ports.Muxer = (*Muxer)(nil)
