package lossyjpeg

import (
	"errors"

	"github.com/vearutop/lossyjpeg/internal/jpegx"
)

var (
	ErrShape                = errors.New("lossyjpeg: plane or block shape mismatch")
	ErrCategoryRange        = errors.New("lossyjpeg: coefficient magnitude out of range")
	ErrInvalidCode          = jpegx.ErrInvalidCode
	ErrTruncated            = errors.New("lossyjpeg: truncated bitstream")
	ErrCorruptBlock         = errors.New("lossyjpeg: run overflows block")
	ErrUnsupportedExtension = errors.New("lossyjpeg: unsupported file extension")
	ErrNotRegular           = errors.New("lossyjpeg: not a regular file")
)
