// Package lossyjpeg implements a baseline-JPEG style lossy compression pipeline.
//
// An RGB raster is converted to YCbCr, chroma is subsampled 4:2:0, every plane
// is cut into 8x8 blocks, transformed with an orthonormal DCT, quantized,
// zig-zag scanned and entropy coded with the run-length/category Huffman
// scheme. The inverse chain reconstructs an approximation of the input, which
// is handed back to the caller (or to the image codec in ProcessDir) for
// persistence. The entropy coded bitstream is self-consistent but is not a
// standards-compliant JPEG file.
package lossyjpeg
