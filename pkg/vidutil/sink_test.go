package vidutil

import (
	"context"
	"errors"
	"testing"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/mocks"
	"github.com/user/vidutil/pkg/ports"
)

func TestSave_InfersSizeAndCodec(t *testing.T) {
	enc := &mocks.VideoEncoder{}
	sink := NewSink(SinkDeps{Encoder: enc, FS: mocks.NewFileSystem()})

	frames := frame.Sequence{solid(8, 6, 1), solid(8, 6, 2)}
	var progress []int
	err := sink.Save(context.Background(), "out.mp4", frames, 24, SaveOptions{
		Progress: func(done, total int) { progress = append(progress, done) },
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	call := enc.OpenCalls[0]
	if call.Size != (frame.Size{Width: 8, Height: 6}) {
		t.Errorf("expected 8x6, got %s", call.Size)
	}
	if call.Codec != codec.Named("mp4v") {
		t.Errorf("expected mp4v, got %v", call.Codec)
	}
	if call.FPS != 24 {
		t.Errorf("expected 24 fps, got %v", call.FPS)
	}

	w := enc.Writers[0]
	if len(w.Frames) != 2 || w.Frames[0].Pix[0] != 1 || w.Frames[1].Pix[0] != 2 {
		t.Error("expected frames written in order")
	}
	if w.CloseCalls != 1 {
		t.Errorf("expected writer closed once, got %d", w.CloseCalls)
	}
	if len(progress) != 2 || progress[1] != 2 {
		t.Errorf("unexpected progress calls: %v", progress)
	}
}

func TestSave_ExplicitSizeAndCodec(t *testing.T) {
	enc := &mocks.VideoEncoder{}
	sink := NewSink(SinkDeps{Encoder: enc, FS: mocks.NewFileSystem()})

	size := frame.Size{Width: 4, Height: 4}
	err := sink.Save(context.Background(), "out.avi", frame.Sequence{solid(4, 4, 0)}, 10, SaveOptions{
		Size:  size,
		Codec: codec.Named("MJPG"),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if enc.OpenCalls[0].Codec != codec.Named("MJPG") {
		t.Errorf("expected MJPG, got %v", enc.OpenCalls[0].Codec)
	}
}

func TestSave_EmptySequence(t *testing.T) {
	enc := &mocks.VideoEncoder{}
	sink := NewSink(SinkDeps{Encoder: enc, FS: mocks.NewFileSystem()})

	err := sink.Save(context.Background(), "out.mp4", nil, 24, SaveOptions{})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("expected ErrEncode, got %v", err)
	}
	if len(enc.OpenCalls) != 0 {
		t.Error("expected no output to be opened")
	}

	err = sink.Save(context.Background(), "out.mp4", nil, 24, SaveOptions{Size: frame.Size{Width: 2, Height: 2}})
	if err != nil {
		t.Fatalf("Save with explicit size failed: %v", err)
	}
	if len(enc.Writers[0].Frames) != 0 || enc.Writers[0].CloseCalls != 1 {
		t.Error("expected an empty, closed output")
	}
}

func TestSave_MismatchedFrame(t *testing.T) {
	enc := &mocks.VideoEncoder{}
	sink := NewSink(SinkDeps{Encoder: enc, FS: mocks.NewFileSystem()})

	frames := frame.Sequence{solid(4, 4, 0), solid(4, 4, 0), solid(2, 2, 0)}
	err := sink.Save(context.Background(), "out.mp4", frames, 24, SaveOptions{})
	if !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame, got %v", err)
	}

	w := enc.Writers[0]
	if len(w.Frames) != 2 {
		t.Errorf("expected 2 frames written before failure, got %d", len(w.Frames))
	}
	if w.CloseCalls != 1 {
		t.Error("expected writer closed after failure")
	}
}

func TestSave_EncoderFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		enc  *mocks.VideoEncoder
	}{
		{"open", &mocks.VideoEncoder{
			OpenFunc: func(string, codec.Codec, float64, frame.Size) (ports.VideoWriter, error) { return nil, boom },
		}},
		{"write", &mocks.VideoEncoder{
			OpenFunc: func(string, codec.Codec, float64, frame.Size) (ports.VideoWriter, error) {
				return &mocks.VideoWriter{WriteFrameFunc: func(*frame.Frame) error { return boom }}, nil
			},
		}},
		{"close", &mocks.VideoEncoder{
			OpenFunc: func(string, codec.Codec, float64, frame.Size) (ports.VideoWriter, error) {
				return &mocks.VideoWriter{CloseFunc: func() error { return boom }}, nil
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewSink(SinkDeps{Encoder: tt.enc, FS: mocks.NewFileSystem()})
			err := sink.Save(context.Background(), "out.mp4", frame.Sequence{solid(2, 2, 0)}, 24, SaveOptions{})
			if !errors.Is(err, ErrEncode) || !errors.Is(err, boom) {
				t.Errorf("expected ErrEncode wrapping boom, got %v", err)
			}
		})
	}
}

func TestExportFramesFromGlob_Defaults(t *testing.T) {
	exp := &mocks.SequenceExporter{}
	sink := NewSink(SinkDeps{Exporter: exp, FS: mocks.NewFileSystem()})

	err := sink.ExportFramesFromGlob(context.Background(), "frames/im*.png", "movie.mp4", GlobOptions{})
	if err != nil {
		t.Fatalf("ExportFramesFromGlob failed: %v", err)
	}

	want := ports.GlobExport{
		Pattern:     "frames/im*.png",
		PatternType: "glob",
		FPS:         25,
		OutputPath:  "movie.mp4",
		Overwrite:   true,
	}
	if exp.Calls[0] != want {
		t.Errorf("expected %+v, got %+v", want, exp.Calls[0])
	}
}

func TestExportFramesFromGlob_Failure(t *testing.T) {
	exp := &mocks.SequenceExporter{
		ExportGlobFunc: func(context.Context, ports.GlobExport) error { return errors.New("no match") },
	}
	sink := NewSink(SinkDeps{Exporter: exp, FS: mocks.NewFileSystem()})

	err := sink.ExportFramesFromGlob(context.Background(), "none/*.png", "movie.mp4", GlobOptions{FPS: 12, PatternType: "sequence"})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("expected ErrEncode, got %v", err)
	}
	if exp.Calls[0].FPS != 12 || exp.Calls[0].PatternType != "sequence" {
		t.Errorf("expected explicit options to pass through, got %+v", exp.Calls[0])
	}
}

func TestMergeAudioVideo(t *testing.T) {
	mux := &mocks.Muxer{}
	sink := NewSink(SinkDeps{Muxer: mux, FS: mocks.NewFileSystem()})

	if err := sink.MergeAudioVideo(context.Background(), "a.wav", "v.mp4", "out.mp4"); err != nil {
		t.Fatalf("MergeAudioVideo failed: %v", err)
	}

	want := ports.MuxRequest{
		AudioPath:  "a.wav",
		VideoPath:  "v.mp4",
		OutputPath: "out.mp4",
		AudioCodec: "aac",
		VideoCodec: "copy",
		Strict:     "experimental",
	}
	if mux.Calls[0] != want {
		t.Errorf("expected %+v, got %+v", want, mux.Calls[0])
	}
}

func TestMergeAudioVideo_NoVideo(t *testing.T) {
	mux := &mocks.Muxer{}
	sink := NewSink(SinkDeps{Muxer: mux})

	if err := sink.MergeAudioVideo(context.Background(), "a.wav", "", "out.mp4"); err != nil {
		t.Errorf("expected nil for missing video, got %v", err)
	}
	if len(mux.Calls) != 0 {
		t.Error("expected no mux invocation")
	}
}

func TestMergeAudioVideo_NoAudio(t *testing.T) {
	mux := &mocks.Muxer{}
	sink := NewSink(SinkDeps{Muxer: mux, FS: mocks.NewFileSystem()})

	if err := sink.MergeAudioVideo(context.Background(), "", "v.mp4", "out.mp4"); err != nil {
		t.Fatalf("MergeAudioVideo failed: %v", err)
	}
	if len(mux.Calls) != 1 || mux.Calls[0].AudioPath != "" {
		t.Errorf("expected a video-only mux, got %+v", mux.Calls)
	}
}

func TestMergeAudioVideo_Failure(t *testing.T) {
	mux := &mocks.Muxer{
		MuxFunc: func(context.Context, ports.MuxRequest) error { return errors.New("exit status 1") },
	}
	sink := NewSink(SinkDeps{Muxer: mux, MuxOptions: MuxOptions{AudioCodec: "libopus"}})

	err := sink.MergeAudioVideo(context.Background(), "a.wav", "v.mp4", "out.mp4")
	if !errors.Is(err, ErrMux) {
		t.Errorf("expected ErrMux, got %v", err)
	}
	if mux.Calls[0].AudioCodec != "libopus" || mux.Calls[0].VideoCodec != "copy" {
		t.Errorf("expected configured codecs, got %+v", mux.Calls[0])
	}
}
