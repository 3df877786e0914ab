package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// Encoder implements ports.VideoEncoder by piping raw RGB frames into an
// ffmpeg process.
type Encoder struct {
	opts Options
	log  ports.Logger
}

// NewEncoder creates a new ffmpeg-based encoder.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts, log: opts.logger("ffmpeg-encoder")}
}

// Open starts an ffmpeg process writing to path.
func (e *Encoder) Open(path string, c codec.Codec, fps float64, size frame.Size) (ports.VideoWriter, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: size %s", ErrInvalidGeometry, size)
	}

	ffmpegPath, err := FindFFmpeg(e.opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	var outArgs []string
	switch c := codec.OrDefault(c).(type) {
	case codec.Named:
		if fps <= 0 {
			return nil, fmt.Errorf("%w: fps %.2f", ErrInvalidGeometry, fps)
		}
		outArgs, err = codecArgs(c)
		if err != nil {
			return nil, err
		}
		outArgs = append(outArgs, "-an", path)

	case codec.RawMode:
		switch c {
		case codec.ModeListCodecs:
			names, err := ListEncoders(context.Background(), ffmpegPath)
			if err != nil {
				return nil, err
			}
			e.log.Info("Available encoders:\n%s", strings.Join(names, "\n"))
			return nil, ErrNoCodecSelected
		case codec.ModeStillImages:
			pattern := stillPattern(path)
			e.log.Info("Writing still images to %s", pattern)
			outArgs = []string{"-f", "image2", "-start_number", "0", pattern}
			path = pattern
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, c)
		}

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCodec, c)
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, dir)
	}

	rate := fps
	if rate <= 0 {
		rate = 1
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y", // Overwrite output
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", size.String(),
		"-r", fmt.Sprintf("%g", rate),
		"-i", "pipe:0",
	}
	args = append(args, outArgs...)

	w := &pipeWriter{size: size}
	w.cmd = exec.Command(ffmpegPath, args...)
	w.cmd.Stderr = &w.stderr

	stdin, err := w.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	w.stdin = stdin

	if err := w.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.log.Debug("Started %s", strings.Join(w.cmd.Args, " "))
	return w, nil
}

// stillPattern turns an output path into an image2 pattern.
// Paths that already carry a printf verb are used as-is.
func stillPattern(path string) string {
	if strings.Contains(path, "%") {
		return path
	}
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "%04d" + ext
}

// pipeWriter is an open ffmpeg encode handle.
type pipeWriter struct {
	size frame.Size

	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	frameCount int
	closed     bool
}

// WriteFrame writes raw RGB samples to ffmpeg stdin.
func (w *pipeWriter) WriteFrame(f *frame.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}
	if f.Channels != frame.DefaultChannels || f.Size() != w.size {
		return fmt.Errorf("%w: frame %s x%d, writer %s x%d",
			ErrInvalidGeometry, f.Size(), f.Channels, w.size, frame.DefaultChannels)
	}

	if _, err := w.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("failed to write frame %d: %w\nstderr: %s", w.frameCount, err, w.stderr.String())
	}

	w.frameCount++
	return nil
}

// Close signals end of input and waits for ffmpeg to finish.
func (w *pipeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	closeErr := w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return processError(err, w.stderr.String())
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close ffmpeg input: %w", closeErr)
	}
	return nil
}

var _ ports.VideoEncoder = (*Encoder)(nil)
