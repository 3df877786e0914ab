// Package vidutil loads frames from video containers or image directories
// and writes frame sequences back to video containers.
//
// A Source produces a fully materialized frame.Sequence; a Sink consumes
// one. Every call is a self-contained open, process, release cycle: decode
// and encode handles are closed before the call returns, on success and on
// failure. Nothing is retried and nothing is cached between calls.
//
// Typical use:
//
//	src := vidutil.NewSource(vidutil.SourceDeps{Decoder: dec, Prober: probe, Images: img})
//	frames, err := src.LoadVideo(ctx, "in.mp4")
//	...
//	sink := vidutil.NewSink(vidutil.SinkDeps{Encoder: enc, Muxer: mux})
//	err = sink.Save(ctx, "out.mp4", frames, fps, vidutil.SaveOptions{})
package vidutil
