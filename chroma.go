package lossyjpeg

import "fmt"

// Subsampled holds the planes produced by Downsample.
// Y is padded to multiples of 16, Cb and Cr are half of Y in each axis.
type Subsampled struct {
	Y, Cb, Cr *Plane

	// Width and Height are the dimensions before padding.
	Width, Height int
}

// Downsample splits a YCbCr raster into a full resolution luma plane and
// 4:2:0 chroma planes. Samples outside the source read as (0, 0, 0).
func Downsample(src *Raster) *Subsampled {
	pw, ph := paddedSize(src.Width), paddedSize(src.Height)

	s := &Subsampled{
		Y:      NewPlane(pw, ph),
		Cb:     NewPlane(pw/2, ph/2),
		Cr:     NewPlane(pw/2, ph/2),
		Width:  src.Width,
		Height: src.Height,
	}

	for y := 0; y < ph; y += 2 {
		for x := 0; x < pw; x += 2 {
			var cbSum, crSum int
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					l, cb, cr := pixelOrZero(src, x+dx, y+dy)
					s.Y.Set(x+dx, y+dy, l)
					cbSum += int(cb)
					crSum += int(cr)
				}
			}
			s.Cb.Set(x/2, y/2, uint8(cbSum/4))
			s.Cr.Set(x/2, y/2, uint8(crSum/4))
		}
	}

	return s
}

func pixelOrZero(r *Raster, x, y int) (uint8, uint8, uint8) {
	if !r.In(x, y) {
		return 0, 0, 0
	}
	return r.At(x, y)
}

// Restore reassembles a YCbCr raster of width x height from a luma plane and
// 4:2:0 chroma planes, each 2x2 luma group sharing one chroma sample.
// The padding region of the planes is dropped.
func Restore(y, cb, cr *Plane, width, height int) (*Raster, error) {
	if err := checkSubsampled(y, cb, cr, width, height); err != nil {
		return nil, err
	}

	dst := NewRaster(width, height)
	for row := 0; row < height; row += 2 {
		for col := 0; col < width; col += 2 {
			cbv := cb.At(col/2, row/2)
			crv := cr.At(col/2, row/2)
			for dy := 0; dy < 2 && row+dy < height; dy++ {
				for dx := 0; dx < 2 && col+dx < width; dx++ {
					dst.Set(col+dx, row+dy, y.At(col+dx, row+dy), cbv, crv)
				}
			}
		}
	}

	return dst, nil
}

func checkSubsampled(y, cb, cr *Plane, width, height int) error {
	for _, p := range []*Plane{y, cb, cr} {
		if err := p.validate(); err != nil {
			return err
		}
	}
	if width <= 0 || height <= 0 || y.Width < width || y.Height < height {
		return fmt.Errorf("%w: luma plane %dx%d cannot hold %dx%d", ErrShape, y.Width, y.Height, width, height)
	}
	if y.Width%2 != 0 || y.Height%2 != 0 {
		return fmt.Errorf("%w: luma plane %dx%d is not even", ErrShape, y.Width, y.Height)
	}
	for _, c := range []*Plane{cb, cr} {
		if c.Width*2 != y.Width || c.Height*2 != y.Height {
			return fmt.Errorf("%w: chroma plane %dx%d is not half of luma %dx%d",
				ErrShape, c.Width, c.Height, y.Width, y.Height)
		}
	}
	return nil
}
