package vidutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/user/vidutil/pkg/adapters/logger"
	"github.com/user/vidutil/pkg/adapters/memreporter"
	"github.com/user/vidutil/pkg/adapters/osfilesystem"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// SourceDeps are the collaborators of a Source. Decoder is required for
// LoadVideo, Images for LoadImages. Prober defaults to Decoder when it
// implements ports.VideoProber. FS defaults to the OS file system and
// Logger to a no-op logger. Memory is optional.
type SourceDeps struct {
	Decoder ports.VideoDecoder
	Prober  ports.VideoProber
	Images  ports.ImageReader
	FS      ports.FileSystem
	Memory  ports.MemoryReporter
	Logger  ports.Logger
}

// Source resolves which frames exist and in what order, from a video
// container or from a directory of still images.
type Source struct {
	decoder ports.VideoDecoder
	prober  ports.VideoProber
	images  ports.ImageReader
	fs      ports.FileSystem
	memory  ports.MemoryReporter
	log     ports.Logger
}

// NewSource creates a Source.
func NewSource(deps SourceDeps) *Source {
	s := &Source{
		decoder: deps.Decoder,
		prober:  deps.Prober,
		images:  deps.Images,
		fs:      deps.FS,
		memory:  deps.Memory,
		log:     deps.Logger,
	}
	if s.prober == nil {
		if p, ok := deps.Decoder.(ports.VideoProber); ok {
			s.prober = p
		}
	}
	if s.fs == nil {
		s.fs = osfilesystem.New()
	}
	if s.log == nil {
		s.log = logger.NewNoop()
	}
	s.log = s.log.WithComponent("source")
	return s
}

// LoadVideo decodes every frame of the container at path, in read order.
// A container that cannot be opened or yields no frame fails with ErrDecode.
func (s *Source) LoadVideo(ctx context.Context, path string) (frame.Sequence, error) {
	const op = "load video"
	if s.decoder == nil {
		return nil, opError(op, path, ErrDecode, errors.New("no decoder configured"))
	}

	s.log.Debug("Loading file://%s", absOrSelf(s.fs, path))

	frames, err := s.readAll(ctx, path)
	if err != nil {
		return nil, err
	}

	// The reader is released by now; the second reading shows what it held.
	logMemory(s.log, s.memory, "Memory usage after release: %s")
	s.log.Debug("Loaded %d frames from %s", len(frames), path)
	return frames, nil
}

func (s *Source) readAll(ctx context.Context, path string) (frame.Sequence, error) {
	const op = "load video"

	r, err := s.decoder.Open(path)
	if err != nil {
		return nil, opError(op, path, ErrDecode, err)
	}
	defer r.Close()

	var frames frame.Sequence
	for {
		if err := ctx.Err(); err != nil {
			return nil, opError(op, path, ErrDecode, err)
		}

		f, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, opError(op, path, ErrDecode, fmt.Errorf("frame %d: %w", len(frames), err))
		}
		frames = append(frames, f)
	}

	if len(frames) == 0 {
		return nil, opError(op, path, ErrDecode, errors.New("no frames decoded"))
	}

	logMemory(s.log, s.memory, "Memory usage: %s")
	return frames, nil
}

// LoadImages reads each image in order, one frame per path.
func (s *Source) LoadImages(ctx context.Context, paths []ImagePath) (frame.Sequence, error) {
	const op = "load images"
	if s.images == nil {
		return nil, opError(op, "", ErrDecode, errors.New("no image reader configured"))
	}

	frames := make(frame.Sequence, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, opError(op, p.Path, ErrDecode, err)
		}

		f, err := s.images.ReadImage(p.Path)
		if err != nil {
			return nil, opError(op, p.Path, ErrDecode, err)
		}
		if err := f.Validate(); err != nil {
			return nil, opError(op, p.Path, ErrDecode, err)
		}
		frames = append(frames, f)
	}

	s.log.Debug("Loaded %d images", len(frames))
	return frames, nil
}

// Probe returns container metadata without decoding frames.
func (s *Source) Probe(path string) (ports.VideoInfo, error) {
	if s.prober != nil {
		info, err := s.prober.Probe(path)
		if err != nil {
			return ports.VideoInfo{}, opError("probe", path, ErrDecode, err)
		}
		return info, nil
	}
	if s.decoder == nil {
		return ports.VideoInfo{}, opError("probe", path, ErrDecode, errors.New("no prober configured"))
	}

	r, err := s.decoder.Open(path)
	if err != nil {
		return ports.VideoInfo{}, opError("probe", path, ErrDecode, err)
	}
	defer r.Close()
	return r.Info(), nil
}

// GetFPS returns the frame rate reported by the container.
func (s *Source) GetFPS(path string) (float64, error) {
	info, err := s.Probe(path)
	if err != nil {
		return 0, err
	}
	return info.FPS, nil
}

// GetTotalFrameCount returns the frame count reported by the container.
// It is not verified against the decoded stream and may be 0.
func (s *Source) GetTotalFrameCount(path string) (int, error) {
	info, err := s.Probe(path)
	if err != nil {
		return 0, err
	}
	return info.FrameCount, nil
}

func logMemory(log ports.Logger, mem ports.MemoryReporter, format string) {
	if mem == nil {
		return
	}
	rss, err := mem.ResidentSetSize()
	if err != nil {
		log.Debug("Memory usage unavailable: %s", err)
		return
	}
	log.Debug(format, memreporter.Format(rss))
}

func absOrSelf(fs ports.FileSystem, path string) string {
	abs, err := fs.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
