package ffmpeg

import (
	"reflect"
	"testing"
)

func TestArgsBuilder(t *testing.T) {
	got := NewArgsBuilder().
		Seek("00:01:00").
		Input("in.mp4").
		Duration("00:00:05").
		CopyCodecs().
		Overwrite().
		Add("out.mp4").
		Build()
	want := []string{"-ss", "00:01:00", "-i", "in.mp4", "-t", "00:00:05", "-c", "copy", "-y", "out.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestArgsBuilderBuildCopies(t *testing.T) {
	b := NewArgsBuilder().Add("-y")
	first := b.Build()
	first[0] = "mutated"
	if got := b.Build(); got[0] != "-y" {
		t.Errorf("Build() after mutation = %v, want [-y]", got)
	}
}

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		name string
		p    ExtractParams
		want []string
	}{
		{
			name: "short segment",
			p:    ExtractParams{Input: "movie.mp4", Output: "movie-1.mp4", Start: 30, End: 119, FPS: 30},
			want: []string{"-ss", "00:00:00", "-i", "movie.mp4", "-ss", "00:00:01", "-t", "00:00:03", "-c", "copy", "-y", "movie-1.mp4"},
		},
		{
			name: "start past first minute",
			p:    ExtractParams{Input: "a b.mkv", Output: "a b-2.mkv", Start: 2000, End: 5000, FPS: 24},
			want: []string{"-ss", "00:01:00", "-i", "a b.mkv", "-ss", "00:00:23", "-t", "00:02:06", "-c", "copy", "-y", "a b-2.mkv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractArgs(tt.p)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractArgs(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestExtractParamsDuration(t *testing.T) {
	p := ExtractParams{Start: 30, End: 119, FPS: 30}
	if got := p.Frames(); got != 89 {
		t.Errorf("Frames() = %d, want 89", got)
	}
	if got := p.DurationSecs(); got != 3 {
		t.Errorf("DurationSecs() = %v, want 3", got)
	}
}

func TestRawVideoArgs(t *testing.T) {
	got := RawVideoArgs("clip.mov")
	want := []string{
		"-nostdin", "-v", "error", "-noautorotate",
		"-i", "clip.mov",
		"-map", "0:v:0", "-f", "rawvideo", "-pix_fmt", "rgba", "-",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawVideoArgs() = %v, want %v", got, want)
	}
}

func TestCommandLine(t *testing.T) {
	got := CommandLine([]string{"-i", "x", "-y", "o"})
	if want := "ffmpeg -i x -y o"; got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}
