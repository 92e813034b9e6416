// Command lossyjpeg compresses every PNG image of a directory through the
// lossy JPEG-style pipeline and writes the reconstructions as JPEG files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/vearutop/lossyjpeg"
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	inDir := lossyjpeg.DefaultInputDir
	if flag.NArg() == 1 {
		inDir = flag.Arg(0)
	}

	report, err := lossyjpeg.ProcessDir(inDir, lossyjpeg.DefaultOutputDir, func(o *lossyjpeg.BatchOptions) {
		o.OnFile = printResult
	})
	if err != nil {
		fail(err)
	}

	fmt.Fprintf(os.Stderr, "%d written, %d failed\n", report.Processed(), report.Failed())
	if report.Failed() > 0 {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: lossyjpeg [input-dir]")
	fmt.Fprintf(os.Stderr, "  input-dir defaults to %s, outputs go to %s\n", lossyjpeg.DefaultInputDir, lossyjpeg.DefaultOutputDir)
}

func printResult(r lossyjpeg.FileResult) {
	switch {
	case r.Skipped:
		if errors.Is(r.Err, lossyjpeg.ErrNotRegular) {
			return
		}
		fmt.Fprintln(os.Stderr, "skip:", r.Input, r.Err)
	case r.Err != nil:
		fmt.Fprintln(os.Stderr, "error:", r.Input, r.Err)
	default:
		fmt.Fprintf(os.Stderr, "ok: %s -> %s (%.3f bpp, ratio %.1f)\n",
			r.Input, r.Output, r.Stats.BitsPerPixel(), r.Stats.Ratio())
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
