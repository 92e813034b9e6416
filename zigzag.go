package lossyjpeg

import "github.com/vearutop/lossyjpeg/internal/jpegx"

// Scan reorders a block into zig-zag order.
func Scan(q *QuantBlock) ZigzagSeq {
	var s ZigzagSeq
	for zig, nat := range jpegx.Unzig {
		s[zig] = q[nat/8][nat%8]
	}
	return s
}

// Unscan is the inverse of Scan.
func Unscan(s *ZigzagSeq) QuantBlock {
	var q QuantBlock
	for zig, nat := range jpegx.Unzig {
		q[nat/8][nat%8] = s[zig]
	}
	return q
}
