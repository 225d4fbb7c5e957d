// Package luma reduces color frames to intensity and scores the change between them.
package luma

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Reduce converts img to a single-channel intensity frame with the same
// bounds, using the BT.601 weights of color.GrayModel. dst is reused when
// its bounds match and allocated otherwise; the returned frame must be used
// in place of dst.
func Reduce(img image.Image, dst *image.Gray) *image.Gray {
	b := img.Bounds()
	if dst == nil || dst.Bounds() != b {
		dst = image.NewGray(b)
	}

	if src, ok := img.(*image.RGBA); ok {
		reduceRGBA(src, dst)
		return dst
	}

	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// reduceRGBA matches color.GrayModel on 8-bit channels without the
// per-pixel interface conversions of the generic draw path.
func reduceRGBA(src *image.RGBA, dst *image.Gray) {
	b := src.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range d {
			r := uint32(s[x*4]) * 0x101
			g := uint32(s[x*4+1]) * 0x101
			bl := uint32(s[x*4+2]) * 0x101
			d[x] = uint8((19595*r + 38470*g + 7471*bl + 1<<15) >> 24)
		}
	}
}

// Score returns the mean absolute per-pixel difference between two frames,
// floored to an integer. Both frames must have the same dimensions; frames
// from one stream always do, so a mismatch panics.
func Score(cur, prev *image.Gray) int {
	cb, pb := cur.Bounds(), prev.Bounds()
	if cb.Dx() != pb.Dx() || cb.Dy() != pb.Dy() {
		panic(fmt.Sprintf("luma: frame size changed from %dx%d to %dx%d", pb.Dx(), pb.Dy(), cb.Dx(), cb.Dy()))
	}

	w, h := cb.Dx(), cb.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var sum uint64
	for y := 0; y < h; y++ {
		c := cur.Pix[y*cur.Stride : y*cur.Stride+w]
		p := prev.Pix[y*prev.Stride : y*prev.Stride+w]
		for x, v := range c {
			if v > p[x] {
				sum += uint64(v - p[x])
			} else {
				sum += uint64(p[x] - v)
			}
		}
	}

	return int(sum / uint64(w*h))
}
