// Package ffmpeg drives the ffmpeg binary as the encode engine, the
// image-sequence exporter and the audio/video mux tool.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/user/vidutil/pkg/adapters/logger"
	"github.com/user/vidutil/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("ffmpeg: ffmpeg not found in PATH")

	// ErrProcessFailed is returned when ffmpeg exits non-zero.
	ErrProcessFailed = errors.New("ffmpeg: process failed")

	// ErrUnsupportedCodec is returned for codecs with no ffmpeg encoder mapping.
	ErrUnsupportedCodec = errors.New("ffmpeg: unsupported codec")

	// ErrNoCodecSelected is returned after listing encoders for the list-codecs mode.
	ErrNoCodecSelected = errors.New("ffmpeg: no codec selected")

	// ErrInvalidGeometry is returned when the output size or frame rate is unusable.
	ErrInvalidGeometry = errors.New("ffmpeg: invalid output geometry")

	// ErrOutputDir is returned when the output directory does not exist.
	ErrOutputDir = errors.New("ffmpeg: output directory does not exist")

	// ErrWriterClosed is returned when writing to a closed handle.
	ErrWriterClosed = errors.New("ffmpeg: writer closed")
)

// Options configures the ffmpeg adapters.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	// When empty, FFMPEG_PATH, PATH and common install locations are searched.
	FFmpegPath string
	Logger     ports.Logger
}

func (o Options) logger(component string) ports.Logger {
	if o.Logger == nil {
		return logger.NewNoop()
	}
	return o.Logger.WithComponent(component)
}

// IsAvailable checks if ffmpeg is available on the system.
func IsAvailable() bool {
	_, err := FindFFmpeg("")
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) custom, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg(custom string) (string, error) {
	return findBinary("ffmpeg", custom, "FFMPEG_PATH")
}

// FindFFprobe searches for ffprobe the same way FindFFmpeg does.
func FindFFprobe(custom string) (string, error) {
	return findBinary("ffprobe", custom, "FFPROBE_PATH")
}

func findBinary(name, custom, envVar string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", ErrFFmpegNotFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonDirs []string
	switch runtime.GOOS {
	case "windows":
		commonDirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		commonDirs = []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		commonDirs = []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/snap/bin"}
	}

	for _, dir := range commonDirs {
		p := dir + string(os.PathSeparator) + execName
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrFFmpegNotFound, name)
}

// run executes ffmpeg to completion and returns its combined output.
func run(ctx context.Context, ffmpegPath string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.Bytes(), processError(err, out.String())
	}
	return out.Bytes(), nil
}

func processError(err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}
	return fmt.Errorf("%w: %v\nstderr: %s", ErrProcessFailed, err, stderr)
}
