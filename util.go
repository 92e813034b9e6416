package lossyjpeg

import "math"

// clampToUint8 saturates v into [0, 255] and truncates toward zero.
func clampToUint8(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func narrow(v float64, mode Narrowing) uint8 {
	if mode == NarrowRound {
		return clampToUint8(math.Round(v))
	}
	return clampToUint8(v)
}

// paddedSize rounds d up to the next multiple of 16.
func paddedSize(d int) int {
	return (d + 15) / 16 * 16
}
