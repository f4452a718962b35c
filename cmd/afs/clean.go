package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ALH477/AFS/pkg/partfile"
)

// runClean removes a part set and its manifest from the parts location.
func runClean(args []string) int {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)

	dir := fs.String("dir", "", "Parts location: directory path or bucket URL (required)")
	base := fs.String("base", "", "Original file name the parts belong to (required)")
	quiet := fs.Bool("quiet", false, "Suppress summary output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: afs clean [options]

Remove every part named by the manifest, then the manifest itself.
Without a manifest, removes parts matching the .partNNN pattern
(cleans up aborted splits).

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

	ctx, cancel := signalContext()
	defer cancel()

	bkt, err := openBucket(ctx, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening parts location: %v\n", err)
		return ExitIOError
	}
	defer bkt.Close()

	removed, err := partfile.Clean(ctx, bkt, *base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "[afs] Removed %d parts for %s\n", removed, *base)
	}
	return ExitSuccess
}
