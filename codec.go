package lossyjpeg

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/gif" // Register GIF decoder.
	_ "image/png" // Register PNG decoder.

	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// RasterFromImage copies any image into an RGB raster, dropping alpha
// (straight, not premultiplied).
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())

	if src, ok := img.(*image.RGBA); ok {
		for y := 0; y < r.Height; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < r.Width; x++ {
				r.Set(x, y, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
		return r
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			r.Set(x, y, c.R, c.G, c.B)
		}
	}
	return r
}

// RGBA converts an RGB raster to an opaque *image.RGBA.
func (r *Raster) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < r.Width; x++ {
			c0, c1, c2 := r.At(x, y)
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = c0, c1, c2, 0xff
		}
	}
	return dst
}

// DecodeFile reads an image file with any registered decoder.
func DecodeFile(path string) (*Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return RasterFromImage(img), nil
}

// EncodeJPEGFile writes img as a standard JPEG file.
func EncodeJPEGFile(path string, img image.Image, quality int) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}
