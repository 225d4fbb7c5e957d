// Package ffprobe extracts video stream properties using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/util"
)

// VideoInfo describes the first video stream of a file.
type VideoInfo struct {
	Width        int
	Height       int
	FPS          float64
	TotalFrames  uint64 // 0 when the container does not record it
	DurationSecs float64
	CodecName    string
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(ctx context.Context, inputPath string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-select_streams", "v:0",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseFFprobeOutput(output)
}

func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &result, nil
}

// GetVideoInfo probes inputPath and returns its video stream properties.
func GetVideoInfo(ctx context.Context, inputPath string) (*VideoInfo, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return videoInfoFromProbe(probe, inputPath)
}

func videoInfoFromProbe(probe *ffprobeOutput, inputPath string) (*VideoInfo, error) {
	var videoStream *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			videoStream = &probe.Streams[i]
			break
		}
	}

	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found in %s", inputPath)
	}

	if videoStream.Width <= 0 || videoStream.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions in %s: %dx%d", inputPath, videoStream.Width, videoStream.Height)
	}

	info := &VideoInfo{
		Width:     videoStream.Width,
		Height:    videoStream.Height,
		CodecName: videoStream.CodecName,
	}

	// r_frame_rate is the container's nominal rate; avg_frame_rate covers
	// streams where it is reported as 0/0.
	info.FPS = util.ParseFrameRate(videoStream.RFrameRate)
	if info.FPS <= 0 {
		info.FPS = util.ParseFrameRate(videoStream.AvgFrameRate)
	}

	if videoStream.NbFrames != "" {
		if frames, err := strconv.ParseUint(videoStream.NbFrames, 10, 64); err == nil {
			info.TotalFrames = frames
		}
	}

	duration := videoStream.Duration
	if duration == "" {
		duration = probe.Format.Duration
	}
	if d, err := strconv.ParseFloat(duration, 64); err == nil {
		info.DurationSecs = d
	}

	if info.TotalFrames == 0 && info.FPS > 0 && info.DurationSecs > 0 {
		info.TotalFrames = uint64(info.DurationSecs*info.FPS + 0.5)
		logging.Debug("frame count estimated from duration", "frames", info.TotalFrames, "duration", info.DurationSecs)
	}

	return info, nil
}
