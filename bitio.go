package lossyjpeg

// bitWriter accumulates bits MSB first into a byte slice.
// No marker stuffing is done: the stream is never embedded in a JPEG file.
type bitWriter struct {
	buf   []byte
	bits  uint32 // pending bits, left aligned
	nBits uint32
	total int
}

// emit appends the least significant nBits bits of bits.
// The precondition is bits < 1<<nBits && nBits <= 24.
func (w *bitWriter) emit(bits, nBits uint32) {
	if nBits == 0 {
		return
	}
	w.total += int(nBits)
	nBits += w.nBits
	bits <<= 32 - nBits
	bits |= w.bits
	for nBits >= 8 {
		w.buf = append(w.buf, uint8(bits>>24))
		bits <<= 8
		nBits -= 8
	}
	w.bits, w.nBits = bits, nBits
}

// bitstream pads the pending partial byte with zeros and returns the result.
func (w *bitWriter) bitstream() *Bitstream {
	data := w.buf
	if w.nBits > 0 {
		data = append(data, uint8(w.bits>>24))
	}
	return &Bitstream{Data: data, Bits: w.total}
}

// bitReader reads the first n bits of a Bitstream, MSB first.
type bitReader struct {
	data []byte
	pos  int // bit position
	n    int
}

func newBitReader(bs *Bitstream) *bitReader {
	n := bs.Bits
	if n > 8*len(bs.Data) {
		n = 8 * len(bs.Data)
	}
	return &bitReader{data: bs.Data, n: n}
}

func (r *bitReader) remaining() int {
	return r.n - r.pos
}

func (r *bitReader) readBit() (uint32, error) {
	if r.pos >= r.n {
		return 0, ErrTruncated
	}
	b := uint32(r.data[r.pos>>3]>>(7-uint(r.pos&7))) & 1
	r.pos++
	return b, nil
}

func (r *bitReader) readBits(n uint32) (uint32, error) {
	if r.remaining() < int(n) {
		return 0, ErrTruncated
	}
	var v uint32
	for i := uint32(0); i < n; i++ {
		b, _ := r.readBit()
		v = v<<1 | b
	}
	return v, nil
}
