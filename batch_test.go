package lossyjpeg

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, patternRaster(w, h).RGBA()))
}

func batchInput(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 17, 17)
	writePNG(t, filepath.Join(dir, "b.PNG"), 32, 24)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hello"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o700))

	return dir
}

func TestProcessDir(t *testing.T) {
	in := batchInput(t)
	out := filepath.Join(t.TempDir(), "out", "deep")

	var seen []string
	report, err := ProcessDir(in, out, func(o *BatchOptions) {
		o.OnFile = func(r FileResult) { seen = append(seen, filepath.Base(r.Input)) }
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 6)
	assert.ElementsMatch(t, []string{"a.png", "b.PNG", "broken.png", "notes.txt", "README", "nested.png"}, seen)

	assert.Equal(t, 2, report.Processed())
	assert.Equal(t, 1, report.Failed())

	byName := map[string]FileResult{}
	for _, r := range report.Files {
		byName[filepath.Base(r.Input)] = r
	}

	assert.True(t, byName["notes.txt"].Skipped)
	assert.ErrorIs(t, byName["notes.txt"].Err, ErrUnsupportedExtension)
	assert.True(t, byName["README"].Skipped)
	assert.ErrorIs(t, byName["README"].Err, ErrUnsupportedExtension)
	assert.True(t, byName["nested.png"].Skipped)
	assert.ErrorIs(t, byName["nested.png"].Err, ErrNotRegular)

	assert.False(t, byName["broken.png"].Skipped)
	assert.Error(t, byName["broken.png"].Err)
	assert.Empty(t, byName["broken.png"].Output)

	for name, dims := range map[string][2]int{"a.png": {17, 17}, "b.PNG": {32, 24}} {
		r := byName[name]
		require.NoError(t, r.Err, name)

		stem := name[:len(name)-len(filepath.Ext(name))]
		assert.Equal(t, filepath.Join(out, stem+"_compressed.jpg"), r.Output)
		assert.Equal(t, dims[0], r.Stats.Width)
		assert.Equal(t, dims[1], r.Stats.Height)
		assert.Positive(t, r.Stats.TotalBits())
		assert.Empty(t, r.Preview)

		f, err := os.Open(r.Output)
		require.NoError(t, err)
		cfg, format, err := image.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, dims[0], cfg.Width)
		assert.Equal(t, dims[1], cfg.Height)
	}
}

func TestProcessDirPreview(t *testing.T) {
	in := batchInput(t)
	out := t.TempDir()

	report, err := ProcessDir(in, out, func(o *BatchOptions) {
		o.PreviewWidth = 8
		o.Pipeline = append(o.Pipeline, func(o *Options) { o.Quality = 90 })
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Processed())

	for _, r := range report.Files {
		if r.Skipped || r.Err != nil {
			continue
		}
		require.NotEmpty(t, r.Preview)

		f, err := os.Open(r.Preview)
		require.NoError(t, err)
		cfg, _, err := image.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.LessOrEqual(t, cfg.Width, 8)
	}
}

func TestProcessDirWorkers(t *testing.T) {
	in := batchInput(t)
	out1, out4 := t.TempDir(), t.TempDir()

	_, err := ProcessDir(in, out1)
	require.NoError(t, err)
	_, err = ProcessDir(in, out4, func(o *BatchOptions) {
		o.Workers = 4
		o.Pipeline = []func(o *Options){func(o *Options) { o.Parallel = true }}
	})
	require.NoError(t, err)

	for _, name := range []string{"a_compressed.jpg", "b_compressed.jpg"} {
		a, err := os.ReadFile(filepath.Join(out1, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(out4, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestProcessDirExtensions(t *testing.T) {
	in := batchInput(t)

	report, err := ProcessDir(in, t.TempDir(), func(o *BatchOptions) {
		o.Extensions = []string{".txt"}
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed())
	assert.Equal(t, 1, report.Failed()) // notes.txt is not an image
}

func TestProcessDirMissingInput(t *testing.T) {
	_, err := ProcessDir(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)
}
