package ffmpeg

import (
	"context"
	"fmt"

	"github.com/user/vidutil/pkg/ports"
)

const (
	// DefaultPatternType is the image2 pattern type used when none is given.
	DefaultPatternType = "glob"
	// DefaultGlobFPS is the input frame rate used when none is given.
	DefaultGlobFPS = 25.0
)

// Exporter implements ports.SequenceExporter with the ffmpeg image2 demuxer.
type Exporter struct {
	opts Options
	log  ports.Logger
}

// NewExporter creates a new image-sequence exporter.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts, log: opts.logger("ffmpeg-export")}
}

// ExportGlob encodes every image matched by req.Pattern into req.OutputPath.
func (x *Exporter) ExportGlob(ctx context.Context, req ports.GlobExport) error {
	ffmpegPath, err := FindFFmpeg(x.opts.FFmpegPath)
	if err != nil {
		return err
	}

	args := exportArgs(req)
	x.log.Debug("Running ffmpeg %v", args)

	if _, err := run(ctx, ffmpegPath, args...); err != nil {
		return err
	}
	return nil
}

func exportArgs(req ports.GlobExport) []string {
	patternType := req.PatternType
	if patternType == "" {
		patternType = DefaultPatternType
	}
	fps := req.FPS
	if fps <= 0 {
		fps = DefaultGlobFPS
	}

	overwrite := "-n"
	if req.Overwrite {
		overwrite = "-y"
	}

	return []string{
		"-hide_banner",
		"-loglevel", "error",
		overwrite,
		"-f", "image2",
		"-pattern_type", patternType,
		"-framerate", fmt.Sprintf("%g", fps),
		"-i", req.Pattern,
		req.OutputPath,
	}
}

var _ ports.SequenceExporter = (*Exporter)(nil)
