package lossyjpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BatchOptions controls ProcessDir.
type BatchOptions struct {
	// Extensions lists accepted input extensions, case-insensitive, with the dot.
	Extensions []string
	// OutputQuality is the JPEG quality of the written files.
	OutputQuality int
	// Workers is the number of images processed concurrently, <= 0 means GOMAXPROCS.
	Workers int
	// PreviewWidth and PreviewHeight bound an additional <stem>_preview.jpg
	// thumbnail of the reconstruction, both zero disable it.
	PreviewWidth, PreviewHeight uint
	// Pipeline options are passed to Compress for every image.
	Pipeline []func(o *Options)
	// OnFile is called once per directory entry, calls are serialized.
	OnFile func(r FileResult)
}

// FileResult is the outcome for a single directory entry.
type FileResult struct {
	Input   string
	Output  string
	Preview string
	Stats   Stats
	// Skipped is set for entries that were not attempted, Err tells why.
	Skipped bool
	Err     error
}

// BatchReport lists the outcome of every directory entry in name order.
type BatchReport struct {
	Files []FileResult
}

// Processed returns the number of files written successfully.
func (r *BatchReport) Processed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped && f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of attempted files that could not be written.
func (r *BatchReport) Failed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped && f.Err != nil {
			n++
		}
	}
	return n
}

// ProcessDir compresses every accepted file of inDir and writes the
// reconstruction to outDir as <stem>_compressed.jpg, creating outDir if needed.
// Failures of single files are recorded in the report, the returned error is
// only set when a directory itself can not be used.
func ProcessDir(inDir, outDir string, opts ...func(o *BatchOptions)) (*BatchReport, error) {
	opt := BatchOptions{
		Extensions:    []string{defaultInputExtension},
		OutputQuality: defaultOutputQuality,
		Workers:       1,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := &BatchReport{Files: make([]FileResult, len(entries))}
	var jobs []int
	for i, e := range entries {
		path := filepath.Join(inDir, e.Name())
		report.Files[i].Input = path
		if err := checkInput(path, opt.Extensions); err != nil {
			report.Files[i].Skipped = true
			report.Files[i].Err = err
			continue
		}
		jobs = append(jobs, i)
	}

	var mu sync.Mutex
	notify := func(r FileResult) {
		if opt.OnFile == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		opt.OnFile(r)
	}

	for i := range report.Files {
		if report.Files[i].Skipped {
			notify(report.Files[i])
		}
	}

	parallelFor(len(jobs), opt.Workers, func(start, end int) {
		for _, idx := range jobs[start:end] {
			r := &report.Files[idx]
			processFile(r, outDir, &opt)
			notify(*r)
		}
	})

	return report, nil
}

func checkInput(path string, extensions []string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return ErrNotRegular
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return fmt.Errorf("%w: no extension", ErrUnsupportedExtension)
	}
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
}

func processFile(r *FileResult, outDir string, opt *BatchOptions) {
	src, err := DecodeFile(r.Input)
	if err != nil {
		r.Err = err
		return
	}

	res, err := Compress(src, opt.Pipeline...)
	if err != nil {
		r.Err = fmt.Errorf("compress: %w", err)
		return
	}
	r.Stats = res.Stats

	base := filepath.Base(r.Input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	out := filepath.Join(outDir, stem+compressedSuffix+outputExtension)
	if err := EncodeJPEGFile(out, res.Image.RGBA(), opt.OutputQuality); err != nil {
		r.Err = fmt.Errorf("write output: %w", err)
		return
	}
	r.Output = out

	if opt.PreviewWidth == 0 && opt.PreviewHeight == 0 {
		return
	}
	thumb, err := Preview(res.Image, opt.PreviewWidth, opt.PreviewHeight)
	if err != nil {
		r.Err = fmt.Errorf("preview: %w", err)
		return
	}
	previewPath := filepath.Join(outDir, stem+previewSuffix+outputExtension)
	if err := EncodeJPEGFile(previewPath, thumb, opt.OutputQuality); err != nil {
		r.Err = fmt.Errorf("write preview: %w", err)
		return
	}
	r.Preview = previewPath
}
