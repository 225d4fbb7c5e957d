package ffprobe

import (
	"strings"
	"testing"
)

const probe1080p = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "30000/1001",
      "avg_frame_rate": "30000/1001",
      "duration": "120.120000",
      "nb_frames": "3600"
    }
  ],
  "format": {
    "duration": "120.500000"
  }
}`

const probeMKV = `{
  "streams": [
    {
      "codec_name": "vp9",
      "codec_type": "video",
      "width": 1280,
      "height": 720,
      "r_frame_rate": "0/0",
      "avg_frame_rate": "25/1"
    }
  ],
  "format": {
    "duration": "10.000000"
  }
}`

const probeAudioOnly = `{
  "streams": [
    {"codec_name": "aac", "codec_type": "audio", "channels": 2}
  ],
  "format": {"duration": "3.0"}
}`

func TestParseFFprobeOutput(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(probe1080p))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	if probe.Format.Duration != "120.500000" {
		t.Errorf("Duration = %q, want %q", probe.Format.Duration, "120.500000")
	}
	if len(probe.Streams) != 1 {
		t.Fatalf("len(Streams) = %d, want 1", len(probe.Streams))
	}
	if probe.Streams[0].RFrameRate != "30000/1001" {
		t.Errorf("RFrameRate = %q, want %q", probe.Streams[0].RFrameRate, "30000/1001")
	}
}

func TestParseFFprobeOutput_Invalid(t *testing.T) {
	if _, err := parseFFprobeOutput([]byte("not json")); err == nil {
		t.Error("parseFFprobeOutput() error = nil, want error")
	}
}

func TestVideoInfoFromProbe(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(probe1080p))
	if err != nil {
		t.Fatal(err)
	}

	info, err := videoInfoFromProbe(probe, "in.mp4")
	if err != nil {
		t.Fatalf("videoInfoFromProbe() error = %v", err)
	}

	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.FPS < 29.97 || info.FPS > 29.98 {
		t.Errorf("FPS = %v, want ~29.97", info.FPS)
	}
	if info.TotalFrames != 3600 {
		t.Errorf("TotalFrames = %d, want 3600", info.TotalFrames)
	}
	if info.DurationSecs != 120.12 {
		t.Errorf("DurationSecs = %v, want 120.12", info.DurationSecs)
	}
	if info.CodecName != "h264" {
		t.Errorf("CodecName = %q, want %q", info.CodecName, "h264")
	}
}

func TestVideoInfoFromProbe_AvgFrameRateFallback(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(probeMKV))
	if err != nil {
		t.Fatal(err)
	}

	info, err := videoInfoFromProbe(probe, "in.mkv")
	if err != nil {
		t.Fatalf("videoInfoFromProbe() error = %v", err)
	}

	if info.FPS != 25 {
		t.Errorf("FPS = %v, want 25", info.FPS)
	}
	if info.DurationSecs != 10 {
		t.Errorf("DurationSecs = %v, want 10", info.DurationSecs)
	}
	if info.TotalFrames != 250 {
		t.Errorf("TotalFrames = %d, want 250 (estimated)", info.TotalFrames)
	}
}

func TestVideoInfoFromProbe_NoVideo(t *testing.T) {
	probe, err := parseFFprobeOutput([]byte(probeAudioOnly))
	if err != nil {
		t.Fatal(err)
	}

	_, err = videoInfoFromProbe(probe, "song.m4a")
	if err == nil || !strings.Contains(err.Error(), "no video stream") {
		t.Errorf("videoInfoFromProbe() error = %v, want no video stream", err)
	}
}

func TestVideoInfoFromProbe_BadDimensions(t *testing.T) {
	probe := &ffprobeOutput{Streams: []ffprobeStream{{CodecType: "video", Width: 0, Height: 480}}}
	if _, err := videoInfoFromProbe(probe, "x"); err == nil {
		t.Error("videoInfoFromProbe() error = nil, want invalid dimensions")
	}
}
