package lossyjpeg

import (
	"image"

	"github.com/disintegration/gift"
)

// smooth applies a gaussian blur to soften block edges of a reconstruction.
func smooth(src *Raster, sigma float32) *Raster {
	g := gift.New(gift.GaussianBlur(sigma))
	img := src.RGBA()
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return RasterFromImage(dst)
}
