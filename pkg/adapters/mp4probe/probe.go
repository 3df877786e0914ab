// Package mp4probe reads frame rate and frame count from MP4/MOV
// containers by parsing box metadata only; sample data is never loaded.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidutil/pkg/ports"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.VideoProber. Files it cannot parse as MP4 are
// handed to Fallback when one is set.
type Prober struct {
	Fallback ports.VideoProber
}

// New creates a Prober with an optional fallback for other containers.
func New(fallback ports.VideoProber) *Prober {
	return &Prober{Fallback: fallback}
}

// Probe reports container metadata for path.
func (p *Prober) Probe(path string) (ports.VideoInfo, error) {
	info, err := ProbeFile(path)
	if err == nil {
		return info, nil
	}
	if p.Fallback != nil {
		return p.Fallback.Probe(path)
	}
	return ports.VideoInfo{}, err
}

// ProbeFile parses the MP4 at path.
func ProbeFile(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader parses an MP4 from reader.
func ProbeReader(reader io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := decode(reader)
	if err != nil {
		return ports.VideoInfo{}, err
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

// decode parses the box tree. mp4ff assumes the first trak carries a
// complete minf/stbl and panics otherwise; such files are reported as
// having no usable video track.
func decode(reader io.ReadSeeker) (mp4File *mp4.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			mp4File = nil
			err = fmt.Errorf("%w: malformed track boxes: %v", ErrNoVideoTrack, r)
		}
	}()

	mp4File, err = mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}
	return mp4File, nil
}

func probeProgressive(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(mp4File.Moov)
	if trak == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)

	if stsz := trak.Mdia.Minf.Stbl.Stsz; stsz != nil {
		info.FrameCount = int(stsz.SampleNumber)
	}

	var timescale uint32
	var duration uint64
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
		duration = trak.Mdia.Mdhd.Duration
	}
	info.FPS = rate(info.FrameCount, duration, timescale)

	return info, nil
}

func probeFragmented(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	moov := mp4File.Init.Moov
	trak := findVideoTrack(moov)
	if trak == nil || trak.Tkhd == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	trackID := trak.Tkhd.TrackID

	var defaultDur uint32
	if moov.Mvex != nil {
		for _, trex := range moov.Mvex.Trexs {
			if trex.TrackID == trackID {
				defaultDur = trex.DefaultSampleDuration
				break
			}
		}
	}

	var count int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				dur := defaultDur
				if traf.Tfhd.HasDefaultSampleDuration() {
					dur = traf.Tfhd.DefaultSampleDuration
				}
				for _, trun := range traf.Truns {
					count += int(trun.SampleCount())
					duration += trun.Duration(dur)
				}
			}
		}
	}

	info.FrameCount = count
	var timescale uint32
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}
	info.FPS = rate(count, duration, timescale)

	return info, nil
}

func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func trackInfo(trak *mp4.TrakBox) ports.VideoInfo {
	var info ports.VideoInfo
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil {
		if children := trak.Mdia.Minf.Stbl.Stsd.Children; len(children) > 0 {
			info.Codec = children[0].Type()
		}
	}
	return info
}

// rate is frames per second over the track duration, 0 when unknown.
func rate(frames int, duration uint64, timescale uint32) float64 {
	if frames == 0 || duration == 0 || timescale == 0 {
		return 0
	}
	return float64(frames) * float64(timescale) / float64(duration)
}

var _ ports.VideoProber = (*Prober)(nil)
