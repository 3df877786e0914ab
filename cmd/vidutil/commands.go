package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/user/vidutil/pkg/adapters/ffmpeg"
	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/vidutil"
)

func probeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show frame rate and frame count of a video"),
		ArgsUsage: "<video>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<video>"); err != nil {
				return err
			}
			path := c.Args().First()

			info, err := e.source().Probe(path)
			if err != nil {
				return err
			}

			fmt.Println(l10n.F("File: %s", path))
			fmt.Println(l10n.F("Size: %dx%d", info.Width, info.Height))
			fmt.Println(l10n.F("Codec: %s", info.Codec))
			fmt.Println(l10n.F("FPS: %.3f", info.FPS))
			fmt.Println(l10n.F("Frames: %d", info.FrameCount))
			return nil
		},
	}
}

func listCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     l10n.T("List the still images of a directory in sequence order"),
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "ext", Usage: l10n.T("Extension to include, repeatable (e.g. .png)")},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<dir>"); err != nil {
				return err
			}

			exts := c.StringSlice("ext")
			if len(exts) == 0 {
				exts = e.cfg.Extensions
			}

			images, err := e.source().ListImages(c.Args().First(), exts...)
			if err != nil {
				return err
			}
			for _, im := range images {
				fmt.Println(im.Path)
			}
			return nil
		},
	}
}

func transcodeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "transcode",
		Usage:     l10n.T("Decode a video or image directory and encode it again"),
		ArgsUsage: "<video|dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Category: l10n.T("Output"), Usage: l10n.T("Output file path (required)")},
			&cli.StringFlag{Name: "codec", Category: l10n.T("Output"), Usage: l10n.T("Four-character code, -1 to list encoders, 0 for still images")},
			&cli.Float64Flag{Name: "fps", Category: l10n.T("Output"), Usage: l10n.T("Output frame rate (default: source frame rate)")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Category: l10n.T("Transform"), Usage: l10n.T("Resize to this width")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Category: l10n.T("Transform"), Usage: l10n.T("Resize to this height")},
			&cli.BoolFlag{Name: "stamp", Category: l10n.T("Transform"), Usage: l10n.T("Draw the frame number onto each frame")},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<video|dir> -o <output>"); err != nil {
				return err
			}
			return e.transcode(c)
		},
	}
}

func (e *env) transcode(c *cli.Context) error {
	ctx, cancel := e.signalContext(c.Context)
	defer cancel()

	src := c.Args().First()
	output := c.String("output")

	cc := e.cfg.ParsedCodec()
	if c.IsSet("codec") {
		parsed, err := codec.Parse(c.String("codec"))
		if err != nil {
			return err
		}
		cc = parsed
	}

	source := e.source()
	frames, fps, err := e.load(ctx, source, src)
	if err != nil {
		e.log.Error("Failed to load video: %s", err)
		return cli.Exit("", 1)
	}
	if c.IsSet("fps") {
		fps = c.Float64("fps")
	}

	frames = e.transform(frames, c.Int("width"), c.Int("height"), c.Bool("stamp"))

	opts := vidutil.SaveOptions{Codec: cc}
	if !c.Bool("quiet") {
		bar := progressbar.NewOptions(len(frames),
			progressbar.OptionSetDescription(l10n.T("Encoding")),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
		opts.Progress = func(done, total int) { _ = bar.Set(done) }
	}

	cleanup, err := e.prepareOutput(output)
	if err != nil {
		e.log.Error("Failed to save video: %s", err)
		return cli.Exit("", 1)
	}
	err = e.sink().Save(ctx, output, frames, fps, opts)
	if errors.Is(err, ffmpeg.ErrNoCodecSelected) {
		return nil
	}
	if err != nil {
		cleanup()
		e.log.Error("Failed to save video: %s", err)
		return cli.Exit("", 1)
	}
	return nil
}

// load reads src as an image directory or a video and returns its frames
// with the frame rate to encode them at.
func (e *env) load(ctx context.Context, source *vidutil.Source, src string) (frame.Sequence, float64, error) {
	info, err := e.fs.Stat(src)
	if err != nil {
		return nil, 0, err
	}

	if info.IsDir() {
		images, err := source.ListImages(src, e.cfg.Extensions...)
		if err != nil {
			return nil, 0, err
		}
		frames, err := source.LoadImages(ctx, images)
		return frames, e.cfg.GlobFPS, err
	}

	frames, err := source.LoadVideo(ctx, src)
	if err != nil {
		return nil, 0, err
	}
	fps, err := source.GetFPS(src)
	if err != nil || fps <= 0 {
		fps = e.cfg.GlobFPS
	}
	return frames, fps, nil
}

// transform resizes every frame to the requested size and, with stamp,
// draws its index onto it.
func (e *env) transform(frames frame.Sequence, width, height int, stamp bool) frame.Sequence {
	if len(frames) == 0 || (width <= 0 && height <= 0 && !stamp) {
		return frames
	}

	size := scaledSize(frames[0].Size(), width, height)
	r := e.renderer
	style := e.cfg.StampStyle()

	out := make(frame.Sequence, len(frames))
	for i, f := range frames {
		if f.Size() != size {
			f = r.Resize(f, size)
		}
		if stamp {
			f = r.Stamp(f, fmt.Sprintf("%04d", i), style)
		}
		out[i] = f
	}
	return out
}

// scaledSize resolves a requested size, keeping the aspect ratio when only
// one side is given.
func scaledSize(src frame.Size, width, height int) frame.Size {
	switch {
	case width > 0 && height > 0:
		return frame.Size{Width: width, Height: height}
	case width > 0:
		return frame.Size{Width: width, Height: max(1, src.Height*width/src.Width)}
	case height > 0:
		return frame.Size{Width: max(1, src.Width*height/src.Height), Height: height}
	default:
		return src
	}
}

func mergeCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: l10n.T("Combine an audio track and a video track"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "audio", Aliases: []string{"a"}, Usage: l10n.T("Audio source file")},
			&cli.StringFlag{Name: "video", Aliases: []string{"v"}, Usage: l10n.T("Video source file")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output file path (required)")},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := e.signalContext(c.Context)
			defer cancel()

			output := c.String("output")
			cleanup, err := e.prepareOutput(output)
			if err != nil {
				e.log.Error("Failed to merge: %s", err)
				return cli.Exit("", 1)
			}
			err = e.sink().MergeAudioVideo(ctx, c.String("audio"), c.String("video"), output)
			if err != nil {
				cleanup()
				e.log.Error("Failed to merge: %s", err)
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func exportCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Encode still images matching a pattern into a video"),
		ArgsUsage: "<pattern>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output file path (required)")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Input frame rate")},
			&cli.StringFlag{Name: "pattern-type", Usage: l10n.T("ffmpeg pattern type (glob, sequence, none)")},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, "<pattern> -o <output>"); err != nil {
				return err
			}
			ctx, cancel := e.signalContext(c.Context)
			defer cancel()

			opts := e.cfg.GlobOptions()
			if c.IsSet("fps") {
				opts.FPS = c.Float64("fps")
			}
			if c.IsSet("pattern-type") {
				opts.PatternType = c.String("pattern-type")
			}

			output := c.String("output")
			cleanup, err := e.prepareOutput(output)
			if err != nil {
				e.log.Error("Failed to export: %s", err)
				return cli.Exit("", 1)
			}
			if err := e.sink().ExportFramesFromGlob(ctx, c.Args().First(), output, opts); err != nil {
				cleanup()
				e.log.Error("Failed to export: %s", err)
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
