package lossyjpeg

// RGBToYCbCr converts every pixel of an RGB raster with the JFIF (BT.601
// full range) matrix. The result has the same dimensions.
func RGBToYCbCr(src *Raster) *Raster {
	dst := NewRaster(src.Width, src.Height)
	for i := 0; i+2 < len(src.Pix); i += 3 {
		r := float64(src.Pix[i])
		g := float64(src.Pix[i+1])
		b := float64(src.Pix[i+2])

		y := 0.299*r + 0.587*g + 0.114*b
		cb := 128 - 0.168736*r - 0.331264*g + 0.5*b
		cr := 128 + 0.5*r - 0.418688*g - 0.081312*b

		dst.Pix[i] = clampToUint8(y)
		dst.Pix[i+1] = clampToUint8(cb)
		dst.Pix[i+2] = clampToUint8(cr)
	}
	return dst
}

// YCbCrToRGB is the inverse of RGBToYCbCr up to 8-bit narrowing.
func YCbCrToRGB(src *Raster) *Raster {
	dst := NewRaster(src.Width, src.Height)
	for i := 0; i+2 < len(src.Pix); i += 3 {
		y := float64(src.Pix[i])
		cb := float64(src.Pix[i+1]) - 128
		cr := float64(src.Pix[i+2]) - 128

		r := y + 1.402*cr
		g := y - 0.344136*cb - 0.714136*cr
		b := y + 1.772*cb

		dst.Pix[i] = clampToUint8(r)
		dst.Pix[i+1] = clampToUint8(g)
		dst.Pix[i+2] = clampToUint8(b)
	}
	return dst
}
