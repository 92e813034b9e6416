package lossyjpeg

import (
	"fmt"
	"math/bits"

	"github.com/vearutop/lossyjpeg/internal/jpegx"
)

const (
	maxDCCategory = 11 // |v| <= 2047
	maxACCategory = 10 // |v| <= 1023
)

// Tables is a pair of DC and AC Huffman code tables.
type Tables struct {
	dc, ac *jpegx.CodeTable
}

var (
	// LuminanceTables code the Y plane.
	LuminanceTables = Tables{dc: jpegx.Tables[jpegx.HuffLuminanceDC], ac: jpegx.Tables[jpegx.HuffLuminanceAC]}
	// ChrominanceTables code the Cb and Cr planes.
	ChrominanceTables = Tables{dc: jpegx.Tables[jpegx.HuffChrominanceDC], ac: jpegx.Tables[jpegx.HuffChrominanceAC]}
)

// EncodeBlocks entropy codes zig-zag sequences in order.
//
// Each block is its DC category symbol and magnitude bits, then one
// (run, category) symbol plus magnitude bits per nonzero AC coefficient,
// then EOB unless the last coefficient is nonzero. Runs longer than 15 are
// split with ZRL symbols. DC is coded as is, not as a difference.
func EncodeBlocks(seqs []ZigzagSeq, t Tables) (*Bitstream, error) {
	var w bitWriter
	for i := range seqs {
		if err := t.encodeBlock(&w, &seqs[i]); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	return w.bitstream(), nil
}

func (t Tables) encodeBlock(w *bitWriter, s *ZigzagSeq) error {
	cat, mag := category(s[0])
	if cat > maxDCCategory {
		return fmt.Errorf("%w: DC %d", ErrCategoryRange, s[0])
	}
	if err := emitSymbol(w, t.dc, byte(cat)); err != nil {
		return err
	}
	w.emit(mag, cat)

	run := uint32(0)
	for k := 1; k < len(s); k++ {
		ac := s[k]
		if ac == 0 {
			run++
			continue
		}
		cat, mag := category(ac)
		if cat > maxACCategory {
			return fmt.Errorf("%w: AC[%d] %d", ErrCategoryRange, k, ac)
		}
		for run > 15 {
			if err := emitSymbol(w, t.ac, jpegx.SymbolZRL); err != nil {
				return err
			}
			run -= 16
		}
		if err := emitSymbol(w, t.ac, byte(run<<4|cat)); err != nil {
			return err
		}
		w.emit(mag, cat)
		run = 0
	}
	if run > 0 {
		return emitSymbol(w, t.ac, jpegx.SymbolEOB)
	}
	return nil
}

func emitSymbol(w *bitWriter, t *jpegx.CodeTable, symbol byte) error {
	c, ok := t.Lookup(symbol)
	if !ok {
		return fmt.Errorf("%w: no code for symbol %#02x", ErrCategoryRange, symbol)
	}
	w.emit(c.Bits, c.Len)
	return nil
}

// category returns the number of bits needed for |v| and the magnitude bits:
// v itself when positive, v-1 truncated to the category width when negative.
func category(v int32) (uint32, uint32) {
	a := int64(v)
	if a < 0 {
		a = -a
	}
	cat := uint32(bits.Len64(uint64(a)))
	if cat == 0 || cat > 24 {
		return cat, 0
	}
	m := int64(v)
	if m < 0 {
		m--
	}
	return cat, uint32(m) & (1<<cat - 1)
}

// DecodeBlocks is the inverse of EncodeBlocks. It decodes blocks until the
// exact bit length of bs is consumed.
func DecodeBlocks(bs *Bitstream, t Tables) ([]ZigzagSeq, error) {
	if bs == nil || bs.Bits < 0 || bs.Bits > 8*len(bs.Data) {
		return nil, ErrTruncated
	}
	r := newBitReader(bs)
	var out []ZigzagSeq
	for r.remaining() > 0 {
		var s ZigzagSeq
		if err := t.decodeBlock(r, &s); err != nil {
			return nil, fmt.Errorf("block %d: %w", len(out), err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (t Tables) decodeBlock(r *bitReader, s *ZigzagSeq) error {
	cat, err := t.dc.Decode(r.readBit)
	if err != nil {
		return err
	}
	if cat > maxDCCategory {
		return fmt.Errorf("%w: DC category %d", ErrInvalidCode, cat)
	}
	if s[0], err = receiveExtend(r, uint32(cat)); err != nil {
		return err
	}

	for k := 1; k < len(s); {
		symbol, err := t.ac.Decode(r.readBit)
		if err != nil {
			return err
		}
		switch symbol {
		case jpegx.SymbolEOB:
			return nil
		case jpegx.SymbolZRL:
			k += 16
			if k > len(s) {
				return ErrCorruptBlock
			}
			continue
		}
		run, size := int(symbol>>4), uint32(symbol&0x0f)
		if size == 0 || size > maxACCategory {
			return fmt.Errorf("%w: AC symbol %#02x", ErrInvalidCode, symbol)
		}
		k += run
		if k >= len(s) {
			return ErrCorruptBlock
		}
		if s[k], err = receiveExtend(r, size); err != nil {
			return err
		}
		k++
	}
	return nil
}

// receiveExtend reads cat magnitude bits and restores the sign.
func receiveExtend(r *bitReader, cat uint32) (int32, error) {
	if cat == 0 {
		return 0, nil
	}
	v, err := r.readBits(cat)
	if err != nil {
		return 0, err
	}
	if v < 1<<(cat-1) {
		return int32(v) - (1 << cat) + 1, nil
	}
	return int32(v), nil
}
