// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/vidutil/pkg/codec"
	"github.com/user/vidutil/pkg/ports"
	"github.com/user/vidutil/pkg/vidutil"
)

// Engines selectable with the engine key.
const (
	EngineFFmpeg = "ffmpeg"
	EngineGoCV   = "gocv"
)

// Config represents the full configuration for the vidutil CLI.
type Config struct {
	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	Engine      string `yaml:"engine"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Sequences
	Extensions []string `yaml:"extensions"`

	// Encoding
	Codec           string  `yaml:"codec"`
	GlobPatternType string  `yaml:"glob_pattern_type"`
	GlobFPS         float64 `yaml:"glob_fps"`

	// Mux
	AudioCodec string `yaml:"audio_codec"`
	VideoCodec string `yaml:"video_codec"`
	Strict     string `yaml:"strict"`

	// Stamp
	StampColor    string  `yaml:"stamp_color"`
	StampFont     string  `yaml:"stamp_font"`
	StampFontSize float64 `yaml:"stamp_font_size"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Engine:   EngineFFmpeg,
		LogLevel: "info",

		Extensions: append([]string(nil), vidutil.DefaultExtensions...),

		Codec:           "mp4v",
		GlobPatternType: vidutil.DefaultPatternType,
		GlobFPS:         vidutil.DefaultGlobFPS,

		AudioCodec: vidutil.DefaultAudioCodec,
		VideoCodec: vidutil.DefaultVideoCodec,
		Strict:     vidutil.DefaultStrict,

		StampColor:    "#ffffff",
		StampFontSize: 14,
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineFFmpeg, EngineGoCV:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if ports.ParseLogLevel(c.LogLevel).String() != c.LogLevel {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if _, err := codec.Parse(c.Codec); err != nil {
		return err
	}
	if c.GlobFPS < 0 {
		return fmt.Errorf("glob_fps must not be negative: %v", c.GlobFPS)
	}
	return nil
}

// ParsedCodec returns the configured codec.
func (c Config) ParsedCodec() codec.Codec {
	parsed, err := codec.Parse(c.Codec)
	if err != nil {
		return codec.Default()
	}
	return parsed
}

// MuxOptions returns the mux settings for a vidutil.Sink.
func (c Config) MuxOptions() vidutil.MuxOptions {
	return vidutil.MuxOptions{
		AudioCodec: c.AudioCodec,
		VideoCodec: c.VideoCodec,
		Strict:     c.Strict,
	}
}

// GlobOptions returns the export settings for a vidutil.Sink.
func (c Config) GlobOptions() vidutil.GlobOptions {
	return vidutil.GlobOptions{
		PatternType: c.GlobPatternType,
		FPS:         c.GlobFPS,
	}
}

// StampStyle returns the text style for frame stamps.
func (c Config) StampStyle() ports.TextStyle {
	return ports.TextStyle{
		FontSize: c.StampFontSize,
		FontPath: c.StampFont,
		Color:    ParseColor(c.StampColor),
		Align:    ports.AlignLeft,
	}
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	return color.RGBA{
		R: hexValue(hex[0])<<4 | hexValue(hex[1]),
		G: hexValue(hex[2])<<4 | hexValue(hex[3]),
		B: hexValue(hex[4])<<4 | hexValue(hex[5]),
		A: 255,
	}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
