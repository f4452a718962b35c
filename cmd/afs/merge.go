package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ALH477/AFS/internal/progress"
	"github.com/ALH477/AFS/pkg/partfile"
)

// runMerge reconstructs the original file from parts in the parts
// location.
func runMerge(args []string) int {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)

	dir := fs.String("dir", "", "Parts location: directory path or bucket URL (required)")
	base := fs.String("base", "", "Original file name the parts belong to (required)")
	out := fs.String("out", "", "Output file path (default: base name in current directory)")
	quiet := fs.Bool("quiet", false, "Suppress summary output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: afs merge [options]

Reconstruct a file from its parts. With a manifest present, every part
is verified before merging and the output hash is checked against the
manifest. Without one, parts are concatenated in lexical filename order
and the result is unverified.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidInput
	}

	if *dir == "" || *base == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir and -base are required")
		fs.Usage()
		return ExitInvalidInput
	}
	if *out == "" {
		*out = *base
	}

	ctx, cancel := signalContext()
	defer cancel()

	bkt, err := openBucket(ctx, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening parts location: %v\n", err)
		return ExitIOError
	}
	defer bkt.Close()

	result, err := partfile.Merge(ctx, bkt, *base, *out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "[afs] Merge complete: %s (%s)\n",
			result.OutputPath, progress.FormatBytes(result.BytesWritten))
		if result.Degraded {
			fmt.Fprintln(os.Stderr, "[afs] WARNING: no manifest found; parts merged in lexical order, output unverified")
		} else if result.Verified {
			fmt.Fprintln(os.Stderr, "[afs] Output hash verified against manifest")
		}
	}

	return ExitSuccess
}
