package codec

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Codec
		wantErr bool
	}{
		{"", Named("mp4v"), false},
		{"mp4v", Named("mp4v"), false},
		{"avc1", Named("avc1"), false},
		{"-1", ModeListCodecs, false},
		{"0", ModeStillImages, false},
		{" 7 ", RawMode(7), false},
		{"h264x", nil, true},
		{"abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFourCC) {
					t.Errorf("expected ErrInvalidFourCC, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault(nil); got != Named(DefaultFourCC) {
		t.Errorf("expected default codec, got %v", got)
	}
	if got := OrDefault(ModeStillImages); got != ModeStillImages {
		t.Errorf("expected still-images mode, got %v", got)
	}
}

func TestRawMode_String(t *testing.T) {
	if ModeListCodecs.String() != "list-codecs(-1)" {
		t.Errorf("unexpected string: %s", ModeListCodecs)
	}
	if RawMode(3).String() != "raw(3)" {
		t.Errorf("unexpected string: %s", RawMode(3))
	}
}
