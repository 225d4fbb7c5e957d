package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/five82/shotsegments/internal/boundary"
)

func TestListing(t *testing.T) {
	segments := []boundary.Segment{
		{Number: 1, Start: 30, End: 119},
		{Number: 2, Start: 200, End: 1500},
	}

	var buf bytes.Buffer
	if err := (Listing{}).Render(&buf, segments); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "1: 30 - 119\n2: 200 - 1500\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Listing{}).Render(&buf, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render(nil) wrote %q, want nothing", buf.String())
	}
}

func TestCommand(t *testing.T) {
	c := Command{Input: "movie.mp4", FPS: 30}
	segments := []boundary.Segment{{Number: 1, Start: 30, End: 119}}

	var buf bytes.Buffer
	if err := c.Render(&buf, segments); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `ffmpeg -ss 00:00:00 -i "movie.mp4" -ss 00:00:01 -t 00:00:03 -c copy -y movie-1.mp4` + "\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestCommandPathWithSpaces(t *testing.T) {
	c := Command{Input: "/videos/my clip.mov", FPS: 25}
	got := c.Line(boundary.Segment{Number: 3, Start: 1500, End: 4000})
	want := `ffmpeg -ss 00:01:00 -i "/videos/my clip.mov" -ss 00:00:00 -t 00:01:41 -c copy -y /videos/my clip-3.mov`
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCommandParams(t *testing.T) {
	c := Command{Input: "a.mkv", FPS: 24}
	p := c.Params(boundary.Segment{Number: 2, Start: 10, End: 20})
	if p.Output != "a-2.mkv" || p.Start != 10 || p.End != 20 || p.FPS != 24 || p.Input != "a.mkv" {
		t.Errorf("Params() = %+v", p)
	}
}

func TestSegmentFilename(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"movie.mp4", 1, "movie-1.mp4"},
		{"movie.final.mkv", 12, "movie.final-12.mkv"},
		{"/data/in.dir/clip", 2, "/data/in.dir/clip-2"},
		{"/data/in.dir/clip.avi", 2, "/data/in.dir/clip-2.avi"},
		{".hidden", 4, ".hidden-4"},
		{"noext", 1, "noext-1"},
		{"trailing.", 5, "trailing-5."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SegmentFilename(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("SegmentFilename(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderWriteError(t *testing.T) {
	segments := []boundary.Segment{{Number: 1, Start: 0, End: 10}}
	renderers := []Renderer{Listing{}, Command{Input: "x.mp4", FPS: 25}}
	for _, r := range renderers {
		if err := r.Render(failWriter{}, segments); err == nil {
			t.Errorf("%T.Render() error = nil, want error", r)
		}
	}
}
