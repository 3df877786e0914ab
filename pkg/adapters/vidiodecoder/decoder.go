// Package vidiodecoder implements the decode engine on top of Vidio,
// which streams frames out of an ffmpeg process and reads container
// metadata with ffprobe.
package vidiodecoder

import (
	"errors"
	"fmt"
	"io"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

var (
	// ErrNoVideoStream is returned when the container has no decodable video stream.
	ErrNoVideoStream = errors.New("vidiodecoder: no video stream")

	// ErrReaderClosed is returned when reading from a closed handle.
	ErrReaderClosed = errors.New("vidiodecoder: reader closed")
)

// Decoder implements ports.VideoDecoder, ports.VideoProber and
// ports.ImageReader. ffmpeg and ffprobe must be on PATH.
type Decoder struct{}

// New creates a new Vidio-backed decoder.
func New() *Decoder {
	return &Decoder{}
}

// Open opens the container at path. Only metadata is read until the first
// ReadFrame call.
func (d *Decoder) Open(path string) (ports.VideoReader, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if video.Width() <= 0 || video.Height() <= 0 {
		video.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
	}
	return &reader{video: video}, nil
}

// Probe reports container metadata without decoding any frame.
func (d *Decoder) Probe(path string) (ports.VideoInfo, error) {
	r, err := d.Open(path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	defer r.Close()
	return r.Info(), nil
}

// ReadImage decodes a still image through ffmpeg. It covers formats the
// Go image decoders do not.
func (d *Decoder) ReadImage(path string) (*frame.Frame, error) {
	width, height, buf, err := vidio.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read image %s: %w", path, frame.ErrEmptyFrame)
	}
	return frame.FromPacked(width, height, len(buf)/(width*height), buf)
}

// reader wraps an open Vidio stream.
type reader struct {
	video  *vidio.Video
	closed bool
}

func (r *reader) ReadFrame() (*frame.Frame, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}
	if !r.video.Read() {
		return nil, io.EOF
	}

	// Vidio reuses its frame buffer between reads, FromPacked copies.
	w, h := r.video.Width(), r.video.Height()
	buf := r.video.FrameBuffer()
	return frame.FromPacked(w, h, len(buf)/(w*h), buf)
}

func (r *reader) Info() ports.VideoInfo {
	return ports.VideoInfo{
		FPS:        r.video.FPS(),
		FrameCount: r.video.Frames(),
		Width:      r.video.Width(),
		Height:     r.video.Height(),
		Codec:      r.video.Codec(),
	}
}

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.video.Close()
	return nil
}

var (
	_ ports.VideoDecoder = (*Decoder)(nil)
	_ ports.VideoProber  = (*Decoder)(nil)
	_ ports.ImageReader  = (*Decoder)(nil)
)
