//go:build gocv

// Package gocvengine implements decode, probe, encode and still-image
// reading on OpenCV through gocv. It needs OpenCV and cgo, so it is only
// built with the gocv tag.
//
// Frames keep OpenCV's BGR channel order in both directions: frames read
// here are BGR and frames written here are expected to be BGR.
package gocvengine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

var (
	// ErrOpen is returned when OpenCV cannot open a container.
	ErrOpen = errors.New("gocvengine: cannot open")

	// ErrUnsupportedMode is returned for raw codec modes OpenCV writers do not take here.
	ErrUnsupportedMode = errors.New("gocvengine: unsupported codec mode")

	// ErrClosed is returned when using a closed handle.
	ErrClosed = errors.New("gocvengine: handle closed")
)

// Engine implements ports.VideoDecoder, ports.VideoProber,
// ports.VideoEncoder and ports.ImageReader.
type Engine struct{}

// New creates a new OpenCV engine.
func New() *Engine {
	return &Engine{}
}

// Open opens the container at path for reading.
func (e *Engine) Open(path string) (ports.VideoReader, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w %s", ErrOpen, path)
	}
	return &reader{vc: vc, mat: gocv.NewMat()}, nil
}

// Probe reports container properties without reading a frame.
func (e *Engine) Probe(path string) (ports.VideoInfo, error) {
	r, err := e.Open(path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	defer r.Close()
	return r.Info(), nil
}

// ReadImage decodes a still image with imread.
func (e *Engine) ReadImage(path string) (*frame.Frame, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("read image %s: %w", path, frame.ErrEmptyFrame)
	}
	return fromMat(mat)
}

// OpenWriter creates a writer for path. Only named four-character codes are
// accepted.
func (e *Engine) OpenWriter(path string, c codec.Codec, fps float64, size frame.Size) (ports.VideoWriter, error) {
	named, ok := codec.OrDefault(c).(codec.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, c)
	}
	if dir := filepath.Dir(path); dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w %s: output directory does not exist", ErrOpen, path)
		}
	}

	vw, err := gocv.VideoWriterFile(path, string(named), fps, size.Width, size.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("%w %s: codec %s", ErrOpen, path, named)
	}
	return &writer{vw: vw, size: size}, nil
}

// Encoder adapts Engine to ports.VideoEncoder.
func (e *Engine) Encoder() ports.VideoEncoder {
	return encoder{e}
}

type encoder struct{ e *Engine }

func (x encoder) Open(path string, c codec.Codec, fps float64, size frame.Size) (ports.VideoWriter, error) {
	return x.e.OpenWriter(path, c, fps, size)
}

type reader struct {
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

func (r *reader) ReadFrame() (*frame.Frame, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if !r.vc.Read(&r.mat) || r.mat.Empty() {
		return nil, io.EOF
	}
	return fromMat(r.mat)
}

func (r *reader) Info() ports.VideoInfo {
	return ports.VideoInfo{
		FPS:        r.vc.Get(gocv.VideoCaptureFPS),
		FrameCount: int(r.vc.Get(gocv.VideoCaptureFrameCount)),
		Width:      int(r.vc.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(r.vc.Get(gocv.VideoCaptureFrameHeight)),
		Codec:      r.vc.CodecString(),
	}
}

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.mat.Close()
	return r.vc.Close()
}

type writer struct {
	vw     *gocv.VideoWriter
	size   frame.Size
	closed bool
}

func (w *writer) WriteFrame(f *frame.Frame) error {
	if w.closed {
		return ErrClosed
	}
	if f.Size() != w.size || f.Channels != frame.DefaultChannels {
		return fmt.Errorf("frame %s x%d does not match writer %s", f.Size(), f.Channels, w.size)
	}

	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Pix)
	if err != nil {
		return err
	}
	defer mat.Close()
	return w.vw.Write(mat)
}

func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.vw.Close()
}

func fromMat(mat gocv.Mat) (*frame.Frame, error) {
	return frame.FromPacked(mat.Cols(), mat.Rows(), mat.Channels(), mat.ToBytes())
}

var (
	_ ports.VideoDecoder = (*Engine)(nil)
	_ ports.VideoProber  = (*Engine)(nil)
	_ ports.ImageReader  = (*Engine)(nil)
	_ ports.VideoEncoder = encoder{}
)
