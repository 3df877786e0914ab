// Package codec models the output codec selector accepted by encoders.
//
// A codec is either a four-character code naming a compression codec
// (Named) or a small integer that asks the encoder for a special mode
// (RawMode). Encoders switch on the concrete type.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultFourCC is the codec used when none is supplied.
const DefaultFourCC = "mp4v"

var (
	// ErrInvalidFourCC is returned when a code is not exactly four characters.
	ErrInvalidFourCC = errors.New("codec: fourcc must be exactly 4 characters")
)

// Codec is either Named or RawMode.
type Codec interface {
	isCodec()
	String() string
}

// Named is a four-character codec code such as "mp4v" or "avc1".
type Named string

func (Named) isCodec() {}

func (n Named) String() string {
	return string(n)
}

// RawMode is an integer special mode understood by the encoder.
type RawMode int

const (
	// ModeListCodecs asks the encoder to report the codecs it can use.
	ModeListCodecs RawMode = -1
	// ModeStillImages asks the encoder to write every frame as a still image.
	ModeStillImages RawMode = 0
)

func (RawMode) isCodec() {}

func (m RawMode) String() string {
	switch m {
	case ModeListCodecs:
		return "list-codecs(-1)"
	case ModeStillImages:
		return "still-images(0)"
	default:
		return fmt.Sprintf("raw(%d)", int(m))
	}
}

// Default returns the default codec.
func Default() Codec {
	return Named(DefaultFourCC)
}

// OrDefault returns c, or the default codec when c is nil.
func OrDefault(c Codec) Codec {
	if c == nil {
		return Default()
	}
	return c
}

// Parse interprets s as an integer mode when it parses as one, and as a
// four-character code otherwise.
func Parse(s string) (Codec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default(), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return RawMode(n), nil
	}
	if len(s) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFourCC, s)
	}
	return Named(s), nil
}
