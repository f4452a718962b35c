package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ALH477/AFS/internal/progress"
	"github.com/ALH477/AFS/pkg/partfile"
)

// runSplit splits a local file into hashed parts plus a manifest in the
// parts location.
func runSplit(args []string) int {
	fs := flag.NewFlagSet("split", flag.ExitOnError)

	in := fs.String("in", "", "Source file to split (required)")
	dir := fs.String("dir", "", "Parts destination: directory path or bucket URL (default: source's directory)")
	sf := addSizingFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: afs split [options]

Split a file into N ordered parts, hash each part and the whole file,
and write a manifest binding the parts back to the original.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidInput
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		return ExitInvalidInput
	}

	cfg, sizing, alg, err := sf.resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidInput
	}

	if *dir == "" {
		*dir = filepath.Dir(*in)
	}

	ctx, cancel := signalContext()
	defer cancel()

	bkt, err := openBucket(ctx, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening parts location: %v\n", err)
		return ExitIOError
	}
	defer bkt.Close()

	var options []partfile.Option
	var reporter *progress.Reporter
	if cfg.Progress && !cfg.Quiet {
		// Plan up front only to size the display; the core re-plans.
		if info, err := os.Stat(*in); err == nil {
			if plan, err := partfile.PlanParts(info.Size(), sizing); err == nil {
				reporter = progress.NewReporter(progress.Options{
					Operation:  "Splitting",
					Source:     *in,
					TotalSize:  info.Size(),
					TotalParts: plan.Count(),
				})
			}
		}
	}
	if reporter != nil {
		reporter.Start()
		defer reporter.Stop()
		options = append(options, partfile.WithProgress(func(_ int, size int64) {
			reporter.PartCompleted(size)
		}))
	}

	result, err := partfile.Split(ctx, bkt, *in, sizing, alg, options...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	if reporter != nil {
		reporter.Stop()
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "[afs] Split complete: %d parts (%s each at most) in %s\n",
			result.Parts,
			progress.FormatBytes(result.Manifest.Parts[0].Size),
			*dir,
		)
		fmt.Fprintf(os.Stderr, "[afs] Manifest: %s\n", result.ManifestKey)
	}

	return ExitSuccess
}
