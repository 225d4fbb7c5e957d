// Package mp4info reads video track properties from MP4/MOV containers
// without external tools.
package mp4info

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Info describes the first video track of an MP4 file.
type Info struct {
	Width        int
	Height       int
	FPS          float64
	TotalFrames  uint64
	DurationSecs float64
	Fragmented   bool
}

// Probe opens path and reads its video track properties.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads video track properties from r. Sample data is not
// loaded.
func ProbeReader(r io.ReadSeeker) (*Info, error) {
	mp4File, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}

	if mp4File.Moov == nil {
		return nil, fmt.Errorf("no moov box")
	}
	trak := videoTrak(mp4File.Moov.Traks)
	if trak == nil {
		return nil, fmt.Errorf("no video track found")
	}
	return trackInfo(trak)
}

func videoTrak(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// trackInfo derives dimensions and timing from a progressive track's
// sample tables.
func trackInfo(trak *mp4.TrakBox) (*Info, error) {
	info := &Info{}
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", info.Width, info.Height)
	}

	if trak.Mdia.Mdhd == nil || trak.Mdia.Mdhd.Timescale == 0 {
		return nil, fmt.Errorf("missing media timescale")
	}
	timescale := float64(trak.Mdia.Mdhd.Timescale)

	var ticks uint64
	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stts != nil {
		stts := trak.Mdia.Minf.Stbl.Stts
		for i, count := range stts.SampleCount {
			info.TotalFrames += uint64(count)
			ticks += uint64(count) * uint64(stts.SampleTimeDelta[i])
		}
	}
	if ticks == 0 {
		ticks = trak.Mdia.Mdhd.Duration
	}

	info.DurationSecs = float64(ticks) / timescale
	if info.TotalFrames > 0 && ticks > 0 {
		info.FPS = float64(info.TotalFrames) * timescale / float64(ticks)
	}
	return info, nil
}

// probeFragmented reads dimensions from the init segment and counts samples
// across all fragments of the video track.
func probeFragmented(mp4File *mp4.File) (*Info, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return nil, fmt.Errorf("fragmented file without init segment")
	}
	trak := videoTrak(mp4File.Init.Moov.Traks)
	if trak == nil {
		return nil, fmt.Errorf("no video track found")
	}

	info := &Info{Fragmented: true}
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", info.Width, info.Height)
	}

	var timescale uint32
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	var trexDuration uint32
	if mvex := mp4File.Init.Moov.Mvex; mvex != nil {
		for _, trex := range mvex.Trexs {
			if trex.TrackID == trak.Tkhd.TrackID {
				trexDuration = trex.DefaultSampleDuration
				break
			}
		}
	}

	var ticks uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trak.Tkhd.TrackID {
					continue
				}
				defaultDuration := traf.Tfhd.DefaultSampleDuration
				if defaultDuration == 0 {
					defaultDuration = trexDuration
				}
				for _, trun := range traf.Truns {
					for _, sample := range trun.Samples {
						dur := sample.Dur
						if dur == 0 {
							dur = defaultDuration
						}
						ticks += uint64(dur)
						info.TotalFrames++
					}
				}
			}
		}
	}

	if timescale > 0 && ticks > 0 {
		info.DurationSecs = float64(ticks) / float64(timescale)
		info.FPS = float64(info.TotalFrames) / info.DurationSecs
	}
	return info, nil
}
