package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/user/vidutil/pkg/codec"
)

// encoderSpec maps a fourcc to ffmpeg output options.
type encoderSpec struct {
	name   string
	pixFmt string
	extra  []string
}

var fourccEncoders = map[string]encoderSpec{
	"mp4v": {name: "mpeg4", extra: []string{"-q:v", "3"}},
	"fmp4": {name: "mpeg4", extra: []string{"-q:v", "3"}},
	"divx": {name: "mpeg4", extra: []string{"-q:v", "3", "-vtag", "DIVX"}},
	"xvid": {name: "mpeg4", extra: []string{"-q:v", "3", "-vtag", "xvid"}},
	"avc1": {name: "libx264", pixFmt: "yuv420p"},
	"h264": {name: "libx264", pixFmt: "yuv420p"},
	"x264": {name: "libx264", pixFmt: "yuv420p"},
	"hev1": {name: "libx265", pixFmt: "yuv420p"},
	"hvc1": {name: "libx265", pixFmt: "yuv420p", extra: []string{"-tag:v", "hvc1"}},
	"mjpg": {name: "mjpeg", pixFmt: "yuvj420p", extra: []string{"-q:v", "3"}},
	"vp80": {name: "libvpx", pixFmt: "yuv420p"},
	"vp90": {name: "libvpx-vp9", pixFmt: "yuv420p"},
	"vp09": {name: "libvpx-vp9", pixFmt: "yuv420p"},
	"av01": {name: "libaom-av1", pixFmt: "yuv420p"},
	"ffv1": {name: "ffv1"},
	"png ": {name: "png", pixFmt: "rgb24"},
	"i420": {name: "rawvideo", pixFmt: "yuv420p"},
	"iyuv": {name: "rawvideo", pixFmt: "yuv420p"},
}

// codecArgs returns the ffmpeg output options for a four-character code.
// Lookup is case-insensitive.
func codecArgs(n codec.Named) ([]string, error) {
	spec, ok := fourccEncoders[strings.ToLower(string(n))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, string(n))
	}

	args := []string{"-c:v", spec.name}
	if spec.pixFmt != "" {
		args = append(args, "-pix_fmt", spec.pixFmt)
	}
	return append(args, spec.extra...), nil
}

// ListEncoders returns the names of the video encoders ffmpeg was built with.
func ListEncoders(ctx context.Context, ffmpegPath string) ([]string, error) {
	out, err := run(ctx, ffmpegPath, "-hide_banner", "-encoders")
	if err != nil {
		return nil, err
	}
	return parseEncoders(out), nil
}

// parseEncoders extracts video encoder names from `ffmpeg -encoders` output.
// Entries follow a "------" separator line; flags start with 'V' for video.
func parseEncoders(out []byte) []string {
	var names []string
	started := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !started {
			started = strings.HasPrefix(line, "---")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "V") {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}
