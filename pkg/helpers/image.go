package helpers

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// NormalizeImage downsizes an image wider than maxWidth and re-encodes it as JPEG.
// ok is false when data is not a decodable image or needs no change; callers
// then upload the original bytes.
func NormalizeImage(data []byte, maxWidth int) (out []byte, ok bool) {
	if maxWidth <= 0 {
		return nil, false
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= maxWidth {
		return nil, false
	}
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
