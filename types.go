package lossyjpeg

import "fmt"

// Raster stores an 8-bit 3-channel image, interleaved and row-major.
// The channels are R,G,B or Y,Cb,Cr depending on the pipeline stage.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // len == 3*Width*Height
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height int) *Raster {
	return &Raster{Width: width, Height: height, Pix: make([]uint8, 3*width*height)}
}

// At returns the three channels at (x, y).
func (r *Raster) At(x, y int) (uint8, uint8, uint8) {
	i := r.offset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Set stores the three channels at (x, y).
func (r *Raster) Set(x, y int, c0, c1, c2 uint8) {
	i := r.offset(x, y)
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c0, c1, c2
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

func (r *Raster) offset(x, y int) int {
	if !r.In(x, y) {
		panic(fmt.Sprintf("lossyjpeg: raster access (%d,%d) outside %dx%d", x, y, r.Width, r.Height))
	}
	return 3 * (y*r.Width + x)
}

// Plane is a single channel of 8-bit samples, row-major.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8 // len == Width*Height
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// At returns the sample at (x, y).
func (p *Plane) At(x, y int) uint8 {
	return p.Pix[p.offset(x, y)]
}

// Set stores the sample at (x, y).
func (p *Plane) Set(x, y int, v uint8) {
	p.Pix[p.offset(x, y)] = v
}

func (p *Plane) offset(x, y int) int {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		panic(fmt.Sprintf("lossyjpeg: plane access (%d,%d) outside %dx%d", x, y, p.Width, p.Height))
	}
	return y*p.Width + x
}

func (p *Plane) validate() error {
	if p == nil || p.Width <= 0 || p.Height <= 0 || len(p.Pix) != p.Width*p.Height {
		return fmt.Errorf("%w: invalid plane", ErrShape)
	}
	return nil
}

// Block is an 8x8 grid of samples or frequency coefficients, [row][col].
type Block [8][8]float64

// QuantBlock is an 8x8 grid of quantized coefficients, [row][col].
type QuantBlock [8][8]int32

// ZigzagSeq is a QuantBlock in zig-zag order, lowest frequency first.
type ZigzagSeq [64]int32

// QuantTable is an 8x8 table of positive divisors in natural order.
type QuantTable [8][8]uint16

// Narrowing selects how reconstructed float samples become 8-bit samples.
type Narrowing int

const (
	// NarrowTruncate saturates into [0, 255] and truncates toward zero.
	NarrowTruncate Narrowing = iota
	// NarrowRound saturates into [0, 255] and rounds to nearest.
	NarrowRound
)

// Bitstream is the entropy coded form of a sequence of blocks.
type Bitstream struct {
	Data []byte
	Bits int // number of valid bits in Data, MSB first
}

// Stats describes the entropy coded size of one image.
type Stats struct {
	Width, Height int

	// Blocks per plane.
	BlocksY, BlocksCb, BlocksCr int

	// Entropy coded bits per plane.
	BitsY, BitsCb, BitsCr int
}

// TotalBits is the entropy coded size of all planes.
func (s Stats) TotalBits() int {
	return s.BitsY + s.BitsCb + s.BitsCr
}

// BitsPerPixel relates the coded size to the original pixel count.
func (s Stats) BitsPerPixel() float64 {
	if s.Width == 0 || s.Height == 0 {
		return 0
	}
	return float64(s.TotalBits()) / float64(s.Width*s.Height)
}

// Ratio is the compression ratio against raw 24-bit RGB.
func (s Stats) Ratio() float64 {
	if s.TotalBits() == 0 {
		return 0
	}
	return float64(24*s.Width*s.Height) / float64(s.TotalBits())
}
