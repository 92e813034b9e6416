package lossyjpeg

import "fmt"

// SplitBlocks cuts a plane into 8x8 blocks in raster order.
// Plane dimensions must be multiples of 8.
func SplitBlocks(p *Plane) ([]Block, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Width%8 != 0 || p.Height%8 != 0 {
		return nil, fmt.Errorf("%w: plane %dx%d is not a multiple of 8", ErrShape, p.Width, p.Height)
	}

	perRow := p.Width / 8
	blocks := make([]Block, 0, perRow*(p.Height/8))
	for by := 0; by < p.Height; by += 8 {
		for bx := 0; bx < p.Width; bx += 8 {
			var b Block
			for j := 0; j < 8; j++ {
				row := p.Pix[(by+j)*p.Width+bx:]
				for i := 0; i < 8; i++ {
					b[j][i] = float64(row[i])
				}
			}
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// MergeBlocks is the inverse of SplitBlocks: block k lands at
// (k mod blocksPerRow, k div blocksPerRow) * 8 of a width x height plane.
func MergeBlocks(blocks []Block, width, height int, mode Narrowing) (*Plane, error) {
	if width <= 0 || height <= 0 || width%8 != 0 || height%8 != 0 {
		return nil, fmt.Errorf("%w: target %dx%d is not a multiple of 8", ErrShape, width, height)
	}
	perRow := width / 8
	if want := perRow * (height / 8); len(blocks) != want {
		return nil, fmt.Errorf("%w: %d blocks for %dx%d, want %d", ErrShape, len(blocks), width, height, want)
	}

	p := NewPlane(width, height)
	for k := range blocks {
		bx, by := (k%perRow)*8, (k/perRow)*8
		for j := 0; j < 8; j++ {
			row := p.Pix[(by+j)*width+bx:]
			for i := 0; i < 8; i++ {
				row[i] = narrow(blocks[k][j][i], mode)
			}
		}
	}
	return p, nil
}
