package vidutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/vidutil/pkg/adapters/logger"
	"github.com/user/vidutil/pkg/adapters/osfilesystem"
	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// Defaults for audio/video merges.
const (
	DefaultAudioCodec = "aac"
	DefaultVideoCodec = "copy"
	DefaultStrict     = "experimental"
)

// Defaults for ExportFramesFromGlob.
const (
	DefaultPatternType = "glob"
	DefaultGlobFPS     = 25.0
)

// MuxOptions controls the codecs used by MergeAudioVideo.
// Empty fields take the package defaults.
type MuxOptions struct {
	AudioCodec string
	VideoCodec string
	Strict     string
}

// SinkDeps are the collaborators of a Sink. Encoder is required for Save,
// Exporter for ExportFramesFromGlob, Muxer for MergeAudioVideo.
type SinkDeps struct {
	Encoder    ports.VideoEncoder
	Exporter   ports.SequenceExporter
	Muxer      ports.Muxer
	FS         ports.FileSystem
	Memory     ports.MemoryReporter
	Logger     ports.Logger
	MuxOptions MuxOptions
}

// Sink writes frame sequences to video containers.
type Sink struct {
	encoder  ports.VideoEncoder
	exporter ports.SequenceExporter
	muxer    ports.Muxer
	fs       ports.FileSystem
	memory   ports.MemoryReporter
	log      ports.Logger
	mux      MuxOptions
}

// NewSink creates a Sink.
func NewSink(deps SinkDeps) *Sink {
	s := &Sink{
		encoder:  deps.Encoder,
		exporter: deps.Exporter,
		muxer:    deps.Muxer,
		fs:       deps.FS,
		memory:   deps.Memory,
		log:      deps.Logger,
		mux:      deps.MuxOptions,
	}
	if s.fs == nil {
		s.fs = osfilesystem.New()
	}
	if s.log == nil {
		s.log = logger.NewNoop()
	}
	s.log = s.log.WithComponent("sink")

	if s.mux.AudioCodec == "" {
		s.mux.AudioCodec = DefaultAudioCodec
	}
	if s.mux.VideoCodec == "" {
		s.mux.VideoCodec = DefaultVideoCodec
	}
	if s.mux.Strict == "" {
		s.mux.Strict = DefaultStrict
	}
	return s
}

// SaveOptions are the optional parameters of Save.
type SaveOptions struct {
	// Size is the output geometry. Zero means the first frame's size.
	Size frame.Size
	// Codec defaults to codec.Named("mp4v").
	Codec codec.Codec
	// Progress, when set, is called after each written frame.
	Progress func(done, total int)
}

// Save writes frames to a new container at path in sequence order.
//
// Every frame must match the output size; the first mismatch fails with
// ErrInvalidFrame before it is written. A partially written file is left
// in place on failure.
func (s *Sink) Save(ctx context.Context, path string, frames frame.Sequence, fps float64, opts SaveOptions) error {
	const op = "save"
	if s.encoder == nil {
		return opError(op, path, ErrEncode, errors.New("no encoder configured"))
	}

	size := opts.Size
	if size.IsZero() {
		if len(frames) == 0 {
			return opError(op, path, ErrEncode, errors.New("no frames and no size"))
		}
		size = frames[0].Size()
	}
	c := codec.OrDefault(opts.Codec)

	s.log.Debug("Saving %d frames to %s (%s, %.2f fps, %s)", len(frames), path, c, fps, size)

	if err := s.writeAll(ctx, path, frames, fps, size, c, opts.Progress); err != nil {
		return err
	}

	logMemory(s.log, s.memory, "Memory usage after release: %s")
	s.log.Info("Saved to file://%s", absOrSelf(s.fs, path))
	return nil
}

func (s *Sink) writeAll(ctx context.Context, path string, frames frame.Sequence, fps float64, size frame.Size, c codec.Codec, progress func(done, total int)) (err error) {
	const op = "save"

	w, err := s.encoder.Open(path, c, fps, size)
	if err != nil {
		return opError(op, path, ErrEncode, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = opError(op, path, ErrEncode, cerr)
		}
	}()

	total := len(frames)
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return opError(op, path, ErrEncode, err)
		}
		if err := checkFrame(f, size); err != nil {
			return opError(op, path, ErrInvalidFrame, fmt.Errorf("frame %d: %w", i, err))
		}
		if err := w.WriteFrame(f); err != nil {
			return opError(op, path, ErrEncode, fmt.Errorf("frame %d: %w", i, err))
		}

		s.log.Debug("Progress %.2f%%", float64(i+1)/float64(total)*100)
		if progress != nil {
			progress(i+1, total)
		}
	}

	logMemory(s.log, s.memory, "Memory usage: %s")
	return nil
}

func checkFrame(f *frame.Frame, size frame.Size) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Size() != size {
		return fmt.Errorf("size %s, expected %s", f.Size(), size)
	}
	return nil
}

// GlobOptions are the optional parameters of ExportFramesFromGlob.
type GlobOptions struct {
	// PatternType is the ffmpeg image2 pattern type, "glob" by default.
	PatternType string
	// FPS is the input frame rate, 25 by default.
	FPS float64
}

// ExportFramesFromGlob encodes the still images matched by pattern into a
// single container at outputPath, overwriting any existing file.
func (s *Sink) ExportFramesFromGlob(ctx context.Context, pattern, outputPath string, opts GlobOptions) error {
	const op = "export frames"
	if s.exporter == nil {
		return opError(op, outputPath, ErrEncode, errors.New("no exporter configured"))
	}

	if opts.PatternType == "" {
		opts.PatternType = DefaultPatternType
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultGlobFPS
	}

	s.log.Debug("Exporting %s at %.2f fps", pattern, opts.FPS)

	err := s.exporter.ExportGlob(ctx, ports.GlobExport{
		Pattern:     pattern,
		PatternType: opts.PatternType,
		FPS:         opts.FPS,
		OutputPath:  outputPath,
		Overwrite:   true,
	})
	if err != nil {
		return opError(op, outputPath, ErrEncode, err)
	}

	s.log.Info("Saved to file://%s", absOrSelf(s.fs, outputPath))
	return nil
}
