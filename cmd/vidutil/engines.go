package main

import (
	"github.com/user/vidutil/pkg/adapters/ffmpeg"
	"github.com/user/vidutil/pkg/adapters/imagereader"
	"github.com/user/vidutil/pkg/adapters/memreporter"
	"github.com/user/vidutil/pkg/adapters/mp4probe"
	"github.com/user/vidutil/pkg/adapters/vidiodecoder"
	"github.com/user/vidutil/pkg/config"
	"github.com/user/vidutil/pkg/ports"
	"github.com/user/vidutil/pkg/vidutil"
)

// engineSet is the decode and encode side chosen by the engine setting.
// Export and mux always run through ffmpeg.
type engineSet struct {
	Decoder ports.VideoDecoder
	Prober  ports.VideoProber
	Images  ports.ImageReader
	Encoder ports.VideoEncoder
}

// engines maps engine names to constructors. Optional engines register
// themselves from build-tagged files.
var engines = map[string]func(cfg config.Config, log ports.Logger) engineSet{
	config.EngineFFmpeg: newFFmpegEngine,
}

func newFFmpegEngine(cfg config.Config, log ports.Logger) engineSet {
	dec := vidiodecoder.New()
	return engineSet{
		Decoder: dec,
		Prober:  mp4probe.New(dec),
		Images:  imagereader.New(dec),
		Encoder: ffmpeg.NewEncoder(ffmpeg.Options{FFmpegPath: cfg.FFmpegPath, Logger: log}),
	}
}

func (e *env) source() *vidutil.Source {
	return vidutil.NewSource(vidutil.SourceDeps{
		Decoder: e.eng.Decoder,
		Prober:  e.eng.Prober,
		Images:  e.eng.Images,
		FS:      e.fs,
		Memory:  memreporter.New(),
		Logger:  e.log,
	})
}

func (e *env) sink() *vidutil.Sink {
	opts := ffmpeg.Options{FFmpegPath: e.cfg.FFmpegPath, Logger: e.log}
	return vidutil.NewSink(vidutil.SinkDeps{
		Encoder:    e.eng.Encoder,
		Exporter:   ffmpeg.NewExporter(opts),
		Muxer:      ffmpeg.NewMuxer(opts),
		FS:         e.fs,
		Memory:     memreporter.New(),
		Logger:     e.log,
		MuxOptions: e.cfg.MuxOptions(),
	})
}
