package lossyjpeg

import (
	"math"

	"github.com/vearutop/lossyjpeg/internal/jpegx"
)

// LuminanceQuant returns the baseline luminance table.
func LuminanceQuant() QuantTable {
	return QuantTable(jpegx.Quant[jpegx.QuantLuminance])
}

// ChrominanceQuant returns the baseline chrominance table.
func ChrominanceQuant() QuantTable {
	return QuantTable(jpegx.Quant[jpegx.QuantChrominance])
}

// ScaleQuantTable scales t for a quality in [1, 100] the way libjpeg does.
// Quality 50 returns t unchanged, quality <= 0 is treated as 50.
func ScaleQuantTable(t QuantTable, quality int) QuantTable {
	if quality <= 0 {
		quality = 50
	}
	if quality > 100 {
		quality = 100
	}
	var scale int
	if quality < 50 {
		scale = 5000 / quality
	} else {
		scale = 200 - quality*2
	}

	var out QuantTable
	for i := range t {
		for j := range t[i] {
			x := (int(t[i][j])*scale + 50) / 100
			if x < 1 {
				x = 1
			}
			if x > 255 {
				x = 255
			}
			out[i][j] = uint16(x)
		}
	}
	return out
}

// Quantize divides every coefficient by its table entry and rounds to the
// nearest integer, halves away from zero.
func Quantize(b *Block, t *QuantTable) QuantBlock {
	var q QuantBlock
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			q[i][j] = int32(math.Round(b[i][j] / float64(t[i][j])))
		}
	}
	return q
}

// Dequantize multiplies every coefficient by its table entry.
func Dequantize(q *QuantBlock, t *QuantTable) Block {
	var b Block
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			b[i][j] = float64(q[i][j]) * float64(t[i][j])
		}
	}
	return b
}
