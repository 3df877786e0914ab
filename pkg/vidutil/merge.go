package vidutil

import (
	"context"
	"errors"

	"github.com/user/vidutil/pkg/ports"
)

// MergeAudioVideo combines the audio of audioPath with the video of
// videoPath into outputPath. The video stream is copied, the audio is
// re-encoded.
//
// An empty videoPath is not an error: nothing is written and nil is
// returned. An empty audioPath produces a video-only output.
func (s *Sink) MergeAudioVideo(ctx context.Context, audioPath, videoPath, outputPath string) error {
	const op = "merge audio/video"

	if audioPath == "" {
		s.log.Info("No audio provided")
	}
	if videoPath == "" {
		s.log.Info("No video provided")
		return nil
	}
	if s.muxer == nil {
		return opError(op, outputPath, ErrMux, errors.New("no muxer configured"))
	}

	s.log.Debug("Merging audio and video: a: %s v: %s", audioPath, videoPath)

	err := s.muxer.Mux(ctx, muxRequest(audioPath, videoPath, outputPath, s.mux))
	if err != nil {
		return opError(op, outputPath, ErrMux, err)
	}

	s.log.Info("Saved to file://%s", absOrSelf(s.fs, outputPath))
	logMemory(s.log, s.memory, "Memory usage: %s")
	return nil
}

func muxRequest(audioPath, videoPath, outputPath string, opts MuxOptions) ports.MuxRequest {
	return ports.MuxRequest{
		AudioPath:  audioPath,
		VideoPath:  videoPath,
		OutputPath: outputPath,
		AudioCodec: opts.AudioCodec,
		VideoCodec: opts.VideoCodec,
		Strict:     opts.Strict,
	}
}
