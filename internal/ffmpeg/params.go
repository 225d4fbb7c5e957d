// Package ffmpeg builds ffmpeg argument lists and runs ffmpeg with progress
// reporting.
package ffmpeg

// Binary is the ffmpeg executable looked up on PATH.
const Binary = "ffmpeg"

// ArgsBuilder builds an ffmpeg argument list with method chaining. Options
// are emitted in call order, so seeks before Input act on the demuxer and
// seeks after it act on the decoded stream.
type ArgsBuilder struct {
	args []string
}

// NewArgsBuilder creates an empty builder.
func NewArgsBuilder() *ArgsBuilder {
	return &ArgsBuilder{}
}

// Seek adds -ss with a time-code.
func (b *ArgsBuilder) Seek(ts string) *ArgsBuilder {
	return b.Add("-ss", ts)
}

// Input adds -i.
func (b *ArgsBuilder) Input(path string) *ArgsBuilder {
	return b.Add("-i", path)
}

// Duration adds -t with a time-code.
func (b *ArgsBuilder) Duration(ts string) *ArgsBuilder {
	return b.Add("-t", ts)
}

// CopyCodecs adds -c copy.
func (b *ArgsBuilder) CopyCodecs() *ArgsBuilder {
	return b.Add("-c", "copy")
}

// Overwrite adds -y.
func (b *ArgsBuilder) Overwrite() *ArgsBuilder {
	return b.Add("-y")
}

// Add appends raw arguments.
func (b *ArgsBuilder) Add(args ...string) *ArgsBuilder {
	b.args = append(b.args, args...)
	return b
}

// Build returns a copy of the accumulated arguments.
func (b *ArgsBuilder) Build() []string {
	out := make([]string, len(b.args))
	copy(out, b.args)
	return out
}
