//go:build libjpeg

package preview

import (
	"image"
	"io"

	"github.com/pixiv/go-libjpeg/jpeg"
)

type jpegOptions = jpeg.EncoderOptions

func jpegQuality(q int) *jpegOptions {
	return &jpeg.EncoderOptions{Quality: q}
}

func encodeJpeg(w io.Writer, img image.Image, opts *jpegOptions) error {
	return jpeg.Encode(w, img, opts)
}
