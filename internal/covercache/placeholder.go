package covercache

import (
	"image"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"

	"github.com/shenavaapp/shenava-client/internal/errors"
)

// decodeSize is the resolution a blurhash is decoded at. The hash carries no
// real detail, so a small decode scaled up looks the same as a large one.
const decodeSize = 32

// Placeholder decodes a blurhash into an image of the requested size, shown
// while the real cover downloads. Decoding happens small and is scaled up
// with a bilinear pass.
func Placeholder(hash string, width, height int) (image.Image, error) {
	if hash == "" {
		return nil, errors.Validation("empty blurhash")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Validationf("invalid placeholder size %dx%d", width, height)
	}

	if width <= decodeSize && height <= decodeSize {
		img, err := blurhash.Decode(hash, width, height, 1)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidation, "decode blurhash")
		}
		return img, nil
	}

	small, err := blurhash.Decode(hash, decodeSize, decodeSize, 1)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "decode blurhash")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst, nil
}
