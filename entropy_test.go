package lossyjpeg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/lossyjpeg/internal/jpegx"
)

func roundTrip(t *testing.T, tbl Tables, seqs []ZigzagSeq) *Bitstream {
	t.Helper()

	bs, err := EncodeBlocks(seqs, tbl)
	require.NoError(t, err)
	require.Equal(t, (bs.Bits+7)/8, len(bs.Data))

	got, err := DecodeBlocks(bs, tbl)
	require.NoError(t, err)
	require.Equal(t, len(seqs), len(got))
	for i := range seqs {
		require.Equal(t, seqs[i], got[i], "block %d", i)
	}
	return bs
}

func TestEntropyZeroBlock(t *testing.T) {
	// DC category 0 and EOB.
	bs := roundTrip(t, LuminanceTables, []ZigzagSeq{{}})
	assert.Equal(t, 2+4, bs.Bits)

	bs = roundTrip(t, ChrominanceTables, []ZigzagSeq{{}})
	assert.Equal(t, 2+2, bs.Bits)
}

func TestEntropyExtremes(t *testing.T) {
	var hi, lo ZigzagSeq
	hi[0], lo[0] = 2047, -2047
	for k := 1; k < len(hi); k++ {
		if k%2 == 0 {
			hi[k], lo[k] = 1023, -1023
		} else {
			hi[k], lo[k] = -1023, 1023
		}
	}
	for _, tbl := range []Tables{LuminanceTables, ChrominanceTables} {
		roundTrip(t, tbl, []ZigzagSeq{hi, lo, {}, hi})
	}
}

func TestEntropyRandomSparse(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	seqs := make([]ZigzagSeq, 200)
	for i := range seqs {
		seqs[i][0] = rnd.Int31n(4095) - 2047
		nonzero := rnd.Intn(20)
		for n := 0; n < nonzero; n++ {
			seqs[i][1+rnd.Intn(63)] = rnd.Int31n(2047) - 1023
		}
	}
	roundTrip(t, LuminanceTables, seqs)
	roundTrip(t, ChrominanceTables, seqs)
}

func TestEntropyLongRuns(t *testing.T) {
	var a, b, c ZigzagSeq
	a[17] = 3  // one ZRL
	b[63] = -1 // three ZRL, last coefficient nonzero so no EOB
	c[0] = 5
	c[16] = 1 // run of exactly 15
	c[48] = 2 // run of 31

	roundTrip(t, LuminanceTables, []ZigzagSeq{a, b, c})
	roundTrip(t, ChrominanceTables, []ZigzagSeq{a, b, c})
}

func TestEntropyNoEOBWhenTailNonzero(t *testing.T) {
	codeLen := func(tbl *jpegx.CodeTable, symbol byte) int {
		c, ok := tbl.Lookup(symbol)
		require.True(t, ok, "symbol %#02x", symbol)
		return int(c.Len)
	}
	dc := codeLen(LuminanceTables.dc, 0)
	zrl := codeLen(LuminanceTables.ac, jpegx.SymbolZRL)
	eob := codeLen(LuminanceTables.ac, jpegx.SymbolEOB)

	var s ZigzagSeq
	s[63] = 1

	var w bitWriter
	require.NoError(t, LuminanceTables.encodeBlock(&w, &s))
	assert.Equal(t, dc+3*zrl+codeLen(LuminanceTables.ac, 0xe1)+1, w.total)

	s[62], s[63] = 1, 0
	w = bitWriter{}
	require.NoError(t, LuminanceTables.encodeBlock(&w, &s))
	assert.Equal(t, dc+3*zrl+codeLen(LuminanceTables.ac, 0xd1)+1+eob, w.total)
}

func TestEntropyCategoryRange(t *testing.T) {
	var dc ZigzagSeq
	dc[0] = 2048
	_, err := EncodeBlocks([]ZigzagSeq{{}, dc}, LuminanceTables)
	assert.ErrorIs(t, err, ErrCategoryRange)
	assert.Contains(t, err.Error(), "block 1")

	var ac ZigzagSeq
	ac[5] = -1024
	_, err = EncodeBlocks([]ZigzagSeq{ac}, ChrominanceTables)
	assert.ErrorIs(t, err, ErrCategoryRange)
}

func TestDecodeTruncated(t *testing.T) {
	var s ZigzagSeq
	s[0], s[1], s[9] = 100, -7, 3
	bs, err := EncodeBlocks([]ZigzagSeq{s}, LuminanceTables)
	require.NoError(t, err)

	short := &Bitstream{Data: bs.Data, Bits: bs.Bits - 1}
	_, err = DecodeBlocks(short, LuminanceTables)
	assert.ErrorIs(t, err, ErrTruncated)

	long := &Bitstream{Data: bs.Data, Bits: 8*len(bs.Data) + 1}
	_, err = DecodeBlocks(long, LuminanceTables)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DecodeBlocks(nil, LuminanceTables)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeInvalidCode(t *testing.T) {
	_, err := DecodeBlocks(&Bitstream{Data: []byte{0xff, 0xff}, Bits: 16}, LuminanceTables)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestDecodeRunOverflow(t *testing.T) {
	var w bitWriter
	dc, _ := LuminanceTables.dc.Lookup(0)
	zrl, _ := LuminanceTables.ac.Lookup(jpegx.SymbolZRL)
	w.emit(dc.Bits, dc.Len)
	for i := 0; i < 4; i++ {
		w.emit(zrl.Bits, zrl.Len)
	}

	_, err := DecodeBlocks(w.bitstream(), LuminanceTables)
	assert.ErrorIs(t, err, ErrCorruptBlock)
}

func TestEntropyEmpty(t *testing.T) {
	bs, err := EncodeBlocks(nil, LuminanceTables)
	require.NoError(t, err)
	assert.Equal(t, 0, bs.Bits)

	seqs, err := DecodeBlocks(bs, LuminanceTables)
	require.NoError(t, err)
	assert.Empty(t, seqs)
}

func TestCategory(t *testing.T) {
	for _, tc := range []struct {
		v        int32
		cat, mag uint32
	}{
		{0, 0, 0},
		{1, 1, 1},
		{-1, 1, 0},
		{5, 3, 5},
		{-5, 3, 2},
		{1023, 10, 1023},
		{-1023, 10, 0},
		{2047, 11, 2047},
		{-2048, 12, 2047},
	} {
		cat, mag := category(tc.v)
		assert.Equal(t, tc.cat, cat, "category of %d", tc.v)
		assert.Equal(t, tc.mag, mag, "magnitude of %d", tc.v)
	}
}

func TestBitWriterReader(t *testing.T) {
	var w bitWriter
	w.emit(0b101, 3)
	w.emit(0, 0)
	w.emit(0xabcd, 16)
	w.emit(1, 1)
	bs := w.bitstream()
	require.Equal(t, 20, bs.Bits)
	require.Len(t, bs.Data, 3)

	r := newBitReader(bs)
	v, err := r.readBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b101), v)
	v, err = r.readBits(16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xabcd), v)
	v, err = r.readBit()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)

	assert.Equal(t, 0, r.remaining())
	_, err = r.readBit()
	assert.ErrorIs(t, err, ErrTruncated)
}
