package lossyjpeg

import (
	"errors"
	"image"

	"github.com/nfnt/resize"
)

// Preview downscales a raster to fit into maxWidth x maxHeight, keeping the
// aspect ratio. A zero bound leaves that axis unconstrained. Rasters that
// already fit are returned as is.
func Preview(src *Raster, maxWidth, maxHeight uint) (image.Image, error) {
	if maxWidth == 0 && maxHeight == 0 {
		return nil, errors.New("preview bounds missing")
	}
	if maxWidth == 0 {
		maxWidth = uint(src.Width)
	}
	if maxHeight == 0 {
		maxHeight = uint(src.Height)
	}
	return resize.Thumbnail(maxWidth, maxHeight, src.RGBA(), resize.Lanczos3), nil
}
