package mp4info

import (
	"bytes"
	"math"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

func videoTrakBox(width, height uint32, timescale uint32, counts, deltas []uint32) *mp4.TrakBox {
	tkhd := &mp4.TkhdBox{TrackID: 1}
	tkhd.Width = mp4.Fixed32(width << 16)
	tkhd.Height = mp4.Fixed32(height << 16)

	return &mp4.TrakBox{
		Tkhd: tkhd,
		Mdia: &mp4.MdiaBox{
			Hdlr: &mp4.HdlrBox{HandlerType: "vide"},
			Mdhd: &mp4.MdhdBox{Timescale: timescale},
			Minf: &mp4.MinfBox{
				Stbl: &mp4.StblBox{
					Stts: &mp4.SttsBox{SampleCount: counts, SampleTimeDelta: deltas},
				},
			},
		},
	}
}

func TestTrackInfo(t *testing.T) {
	trak := videoTrakBox(1280, 720, 30000, []uint32{300}, []uint32{1001})

	info, err := trackInfo(trak)
	if err != nil {
		t.Fatalf("trackInfo() error = %v", err)
	}

	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", info.Width, info.Height)
	}
	if info.TotalFrames != 300 {
		t.Errorf("TotalFrames = %d, want 300", info.TotalFrames)
	}
	if math.Abs(info.FPS-29.97) > 0.01 {
		t.Errorf("FPS = %v, want ~29.97", info.FPS)
	}
	if math.Abs(info.DurationSecs-10.01) > 0.001 {
		t.Errorf("DurationSecs = %v, want ~10.01", info.DurationSecs)
	}
}

func TestTrackInfoVariableDeltas(t *testing.T) {
	trak := videoTrakBox(640, 480, 1000, []uint32{10, 10}, []uint32{40, 60})

	info, err := trackInfo(trak)
	if err != nil {
		t.Fatalf("trackInfo() error = %v", err)
	}
	if info.TotalFrames != 20 {
		t.Errorf("TotalFrames = %d, want 20", info.TotalFrames)
	}
	if info.FPS != 20 {
		t.Errorf("FPS = %v, want 20", info.FPS)
	}
}

func TestTrackInfoErrors(t *testing.T) {
	tests := []struct {
		name string
		trak *mp4.TrakBox
	}{
		{"zero width", videoTrakBox(0, 480, 1000, nil, nil)},
		{"zero timescale", videoTrakBox(640, 480, 0, nil, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := trackInfo(tt.trak); err == nil {
				t.Error("trackInfo() error = nil, want error")
			}
		})
	}
}

func TestVideoTrak(t *testing.T) {
	audio := &mp4.TrakBox{Mdia: &mp4.MdiaBox{Hdlr: &mp4.HdlrBox{HandlerType: "soun"}}}
	video := videoTrakBox(320, 240, 90000, nil, nil)

	if got := videoTrak([]*mp4.TrakBox{audio, video}); got != video {
		t.Errorf("videoTrak() = %v, want video track", got)
	}
	if got := videoTrak([]*mp4.TrakBox{audio}); got != nil {
		t.Errorf("videoTrak() = %v, want nil", got)
	}
}

func TestProbeReaderRejectsGarbage(t *testing.T) {
	if _, err := ProbeReader(bytes.NewReader([]byte("definitely not an mp4 file"))); err == nil {
		t.Error("ProbeReader() error = nil, want error")
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := Probe("/nonexistent/clip.mp4"); err == nil {
		t.Error("Probe() error = nil, want error")
	}
}

func buildFragmented(t *testing.T, width, height, timescale uint32, samples int, dur uint32) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "und")
	trak := init.Moov.Trak
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	for i := 0; i < samples; i++ {
		frag.AddFullSample(mp4.FullSample{
			Sample:     mp4.Sample{Flags: mp4.SyncSampleFlags, Size: 4, Dur: dur},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       []byte{0, 0, 0, 0},
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso6"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	return buf.Bytes()
}

func TestProbeReaderFragmented(t *testing.T) {
	data := buildFragmented(t, 320, 240, 25000, 50, 1000)

	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProbeReader() error = %v", err)
	}

	if !info.Fragmented {
		t.Error("Fragmented = false, want true")
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", info.Width, info.Height)
	}
	if info.TotalFrames != 50 {
		t.Errorf("TotalFrames = %d, want 50", info.TotalFrames)
	}
	if info.FPS != 25 {
		t.Errorf("FPS = %v, want 25", info.FPS)
	}
	if info.DurationSecs != 2 {
		t.Errorf("DurationSecs = %v, want 2", info.DurationSecs)
	}
}
