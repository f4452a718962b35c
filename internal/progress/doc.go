// Package progress provides progress reporting for split and merge
// operations.
//
// This package outputs human-readable progress information to stderr,
// including completion percentage, throughput, and ETA.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    Operation:  "Splitting",
//	    Source:     "archive.tar",
//	    TotalSize:  totalBytes,
//	    TotalParts: numParts,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as parts complete
//	reporter.PartCompleted(partSize)
//
// # Output Format
//
//	[afs] Splitting: archive.tar
//	[afs] Total size: 2.5 GiB | Parts: 24
//	[afs] Progress: 45.8% | 1.1 GiB / 2.5 GiB | Parts: 11/24 | 310 MiB/s | ETA: 4s
//
// It also holds the byte-size formatting and parsing helpers (FormatBytes,
// ParseBytes) used across the CLI.
package progress
