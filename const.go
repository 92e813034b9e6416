package lossyjpeg

const (
	// DefaultInputDir is read when no directory is given on the command line.
	DefaultInputDir = "Kodak24"
	// DefaultOutputDir receives the reconstructed images.
	DefaultOutputDir = "CompressedImages"
)

const (
	defaultInputExtension = ".png"
	defaultOutputQuality  = 75
	compressedSuffix      = "_compressed"
	previewSuffix         = "_preview"
	outputExtension       = ".jpg"
)
