package lossyjpeg

import "math"

// dctBasis[x][u] = C(u) * cos((2x+1)uπ/16), C(0) = sqrt(1/8), C(u) = sqrt(2/8).
var dctBasis [8][8]float64

func init() {
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			c := math.Sqrt(2.0 / 8.0)
			if u == 0 {
				c = math.Sqrt(1.0 / 8.0)
			}
			dctBasis[x][u] = c * math.Cos(float64(2*x+1)*float64(u)*math.Pi/16.0)
		}
	}
}

// FDCT applies the orthonormal 2D DCT-II to a block of samples.
// No level shift is applied: a constant block of value v yields DC 8v.
func FDCT(src *Block) Block {
	var tmp, dst Block
	// Rows.
	for y := 0; y < 8; y++ {
		for u := 0; u < 8; u++ {
			sum := 0.0
			for x := 0; x < 8; x++ {
				sum += src[y][x] * dctBasis[x][u]
			}
			tmp[y][u] = sum
		}
	}
	// Columns.
	for u := 0; u < 8; u++ {
		for v := 0; v < 8; v++ {
			sum := 0.0
			for y := 0; y < 8; y++ {
				sum += tmp[y][u] * dctBasis[y][v]
			}
			dst[v][u] = sum
		}
	}
	return dst
}

// IDCT applies the orthonormal 2D DCT-III, the exact inverse of FDCT.
func IDCT(src *Block) Block {
	var tmp, dst Block
	// Columns.
	for u := 0; u < 8; u++ {
		for y := 0; y < 8; y++ {
			sum := 0.0
			for v := 0; v < 8; v++ {
				sum += src[v][u] * dctBasis[y][v]
			}
			tmp[y][u] = sum
		}
	}
	// Rows.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sum := 0.0
			for u := 0; u < 8; u++ {
				sum += tmp[y][u] * dctBasis[x][u]
			}
			dst[y][x] = sum
		}
	}
	return dst
}
