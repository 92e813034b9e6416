package jpegx

import "errors"

// ErrInvalidCode is returned when a bit sequence matches no codeword of a table.
var ErrInvalidCode = errors.New("lossyjpeg: invalid huffman code")

// HuffIndex selects one of the four Huffman tables.
type HuffIndex int

const (
	HuffLuminanceDC HuffIndex = iota
	HuffLuminanceAC
	HuffChrominanceDC
	HuffChrominanceAC
	NHuff
)

// HuffmanSpec specifies a Huffman encoding.
type HuffmanSpec struct {
	// Count[i] is the number of codes of length i+1 bits.
	Count [16]byte
	// Value[i] is the decoded value of the i'th codeword.
	Value []byte
}

// Specs are the Huffman encoding specifications of Annex K.3.
//
// The DC tables have 12 decoded values, called categories.
//
// The AC tables have 162 decoded values: bytes that pack a 4-bit Run and a
// 4-bit Size. There are 16 valid Runs and 10 valid Sizes, plus two special R|S
// cases: 0|0 (meaning EOB) and F|0 (meaning ZRL).
var Specs = [NHuff]HuffmanSpec{
	// Luminance DC.
	{
		[16]byte{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	// Luminance AC.
	{
		[16]byte{0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 125},
		[]byte{
			0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
			0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
			0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
			0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
			0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
			0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
			0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
			0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
			0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
			0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
			0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
			0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
			0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
			0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
			0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
			0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
			0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
			0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
			0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
	// Chrominance DC.
	{
		[16]byte{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	// Chrominance AC.
	{
		[16]byte{0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 119},
		[]byte{
			0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
			0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
			0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
			0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
			0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
			0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
			0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
			0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
			0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
			0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
			0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
			0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
			0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
			0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
			0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
			0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
			0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
			0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
			0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
			0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
}

// Code is a single codeword, right-aligned in Bits.
type Code struct {
	Bits uint32
	Len  uint32
}

// CodeTable is a compiled representation of a HuffmanSpec usable for both
// directions.
type CodeTable struct {
	codes [256]Code

	// Canonical decoding limits per code length, index 1..16.
	minCode [17]int32
	maxCode [17]int32
	valPtr  [17]int
	values  []byte
}

// NewCodeTable assigns canonical codewords to the symbols of s in order of
// increasing length.
func NewCodeTable(s HuffmanSpec) *CodeTable {
	t := &CodeTable{values: s.Value}
	code, k := uint32(0), 0
	for i := 0; i < len(s.Count); i++ {
		l := i + 1
		t.maxCode[l] = -1
		if s.Count[i] > 0 {
			t.valPtr[l] = k
			t.minCode[l] = int32(code)
		}
		for j := uint8(0); j < s.Count[i]; j++ {
			t.codes[s.Value[k]] = Code{Bits: code, Len: uint32(l)}
			code++
			k++
		}
		if s.Count[i] > 0 {
			t.maxCode[l] = int32(code - 1)
		}
		code <<= 1
	}
	return t
}

// Lookup returns the codeword of symbol, ok is false if the table has none.
func (t *CodeTable) Lookup(symbol byte) (Code, bool) {
	c := t.codes[symbol]
	return c, c.Len > 0
}

// Symbols returns the decoded values in codeword order.
func (t *CodeTable) Symbols() []byte {
	return append([]byte(nil), t.values...)
}

// Decode reads bits one at a time from next until they form a codeword.
func (t *CodeTable) Decode(next func() (uint32, error)) (byte, error) {
	code := int32(0)
	for l := 1; l <= 16; l++ {
		bit, err := next()
		if err != nil {
			return 0, err
		}
		code = code<<1 | int32(bit)
		if t.maxCode[l] >= 0 && code <= t.maxCode[l] && code >= t.minCode[l] {
			return t.values[t.valPtr[l]+int(code-t.minCode[l])], nil
		}
	}
	return 0, ErrInvalidCode
}

// Tables are the compiled Specs, indexed by HuffIndex.
var Tables [NHuff]*CodeTable

func init() {
	for i, s := range Specs {
		Tables[i] = NewCodeTable(s)
	}
}
