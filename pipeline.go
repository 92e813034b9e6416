package lossyjpeg

import "fmt"

// Options controls the compression pipeline.
type Options struct {
	// Narrowing selects how reconstructed samples are narrowed to 8 bits.
	Narrowing Narrowing
	// Quality scales the quantization tables (1-100), 0 keeps the baseline tables.
	Quality int
	// Parallel fans the per-block stages out to the worker pool.
	Parallel bool
	// Smooth is the sigma of a gaussian post-filter on the reconstruction, 0 disables it.
	Smooth float32
	OnStats func(s Stats)
}

// Result is the outcome of Compress.
type Result struct {
	// Image is the reconstructed RGB raster, same dimensions as the input.
	Image *Raster
	Stats Stats

	// Entropy coded planes.
	Y, Cb, Cr *Bitstream
}

// Compress runs the full forward and inverse pipeline on an RGB raster.
func Compress(src *Raster, opts ...func(o *Options)) (res *Result, err error) {
	if src == nil || src.Width <= 0 || src.Height <= 0 || len(src.Pix) != 3*src.Width*src.Height {
		return nil, fmt.Errorf("%w: invalid source raster", ErrShape)
	}

	opt := Options{Narrowing: NarrowTruncate}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	// Out of bounds plane access panics, report it as a failure of this image.
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrShape, r)
		}
	}()

	lq, cq := LuminanceQuant(), ChrominanceQuant()
	if opt.Quality > 0 {
		lq, cq = ScaleQuantTable(lq, opt.Quality), ScaleQuantTable(cq, opt.Quality)
	}

	sub := Downsample(RGBToYCbCr(src))

	res = &Result{Stats: Stats{Width: src.Width, Height: src.Height}}
	y, err := CompressPlane(sub.Y, &lq, LuminanceTables, opt)
	if err != nil {
		return nil, fmt.Errorf("luma: %w", err)
	}
	cb, err := CompressPlane(sub.Cb, &cq, ChrominanceTables, opt)
	if err != nil {
		return nil, fmt.Errorf("cb: %w", err)
	}
	cr, err := CompressPlane(sub.Cr, &cq, ChrominanceTables, opt)
	if err != nil {
		return nil, fmt.Errorf("cr: %w", err)
	}

	res.Y, res.Cb, res.Cr = y.Stream, cb.Stream, cr.Stream
	res.Stats.BlocksY, res.Stats.BitsY = y.Blocks, y.Stream.Bits
	res.Stats.BlocksCb, res.Stats.BitsCb = cb.Blocks, cb.Stream.Bits
	res.Stats.BlocksCr, res.Stats.BitsCr = cr.Blocks, cr.Stream.Bits

	restored, err := Restore(y.Plane, cb.Plane, cr.Plane, sub.Width, sub.Height)
	if err != nil {
		return nil, fmt.Errorf("restore chroma: %w", err)
	}
	res.Image = YCbCrToRGB(restored)

	if opt.Smooth > 0 {
		res.Image = smooth(res.Image, opt.Smooth)
	}

	if opt.OnStats != nil {
		opt.OnStats(res.Stats)
	}

	return res, nil
}

// PlaneResult is the outcome of CompressPlane.
type PlaneResult struct {
	// Plane is the reconstruction, same dimensions as the input.
	Plane  *Plane
	Stream *Bitstream
	Blocks int
}

// CompressPlane runs split, DCT, quantization, zig-zag, entropy coding and
// back on a single plane whose dimensions are multiples of 8.
func CompressPlane(p *Plane, q *QuantTable, t Tables, opt Options) (*PlaneResult, error) {
	blocks, err := SplitBlocks(p)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	seqs := forwardBlocks(blocks, q, opt.Parallel)

	stream, err := EncodeBlocks(seqs, t)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	decoded, err := DecodeBlocks(stream, t)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(decoded) != len(blocks) {
		return nil, fmt.Errorf("%w: decoded %d blocks, encoded %d", ErrShape, len(decoded), len(blocks))
	}

	merged, err := MergeBlocks(inverseBlocks(decoded, q, opt.Parallel), p.Width, p.Height, opt.Narrowing)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	return &PlaneResult{Plane: merged, Stream: stream, Blocks: len(blocks)}, nil
}

// forwardBlocks applies FDCT, Quantize and Scan to every block.
func forwardBlocks(blocks []Block, q *QuantTable, parallel bool) []ZigzagSeq {
	seqs := make([]ZigzagSeq, len(blocks))
	fn := func(start, end int) {
		for i := start; i < end; i++ {
			coef := FDCT(&blocks[i])
			qb := Quantize(&coef, q)
			seqs[i] = Scan(&qb)
		}
	}
	if parallel {
		parallelFor(len(blocks), 0, fn)
	} else {
		fn(0, len(blocks))
	}
	return seqs
}

// inverseBlocks applies Unscan, Dequantize and IDCT to every sequence.
func inverseBlocks(seqs []ZigzagSeq, q *QuantTable, parallel bool) []Block {
	blocks := make([]Block, len(seqs))
	fn := func(start, end int) {
		for i := start; i < end; i++ {
			qb := Unscan(&seqs[i])
			coef := Dequantize(&qb, q)
			blocks[i] = IDCT(&coef)
		}
	}
	if parallel {
		parallelFor(len(seqs), 0, fn)
	} else {
		fn(0, len(seqs))
	}
	return blocks
}
