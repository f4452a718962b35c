package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ALH477/AFS/internal/progress"
	"github.com/ALH477/AFS/pkg/partfile"
)

// runCheck verifies a part set against its manifest without merging.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	dir := fs.String("dir", "", "Parts location: directory path or bucket URL (required)")
	base := fs.String("base", "", "Original file name the parts belong to (required)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: afs check [options]

Verify that every part named by the manifest exists with the recorded
size and hash. Stops at the first bad part. Does not write anything.

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

	m, err := partfile.ReadManifest(ctx, bkt, *base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	fmt.Printf("File: %s\n", m.OriginalFile)
	fmt.Printf("Size: %s (%d bytes)\n", progress.FormatBytes(m.OriginalSize), m.OriginalSize)
	fmt.Printf("Parts: %d\n", m.NumParts)
	fmt.Printf("Algorithm: %s\n", m.HashAlgorithm)

	if err := partfile.Check(ctx, bkt, m); err != nil {
		fmt.Println("Status: FAILED")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	fmt.Println("Status: OK")
	return ExitSuccess
}
