package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ALH477/AFS/pkg/partfile"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidInput    = 2
	ExitIOError         = 3
	ExitManifestError   = 4
	ExitIntegrityFailed = 5
	ExitCanceled        = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidInput
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "split":
		return runSplit(cmdArgs)
	case "merge":
		return runMerge(cmdArgs)
	case "verify":
		return runVerify(cmdArgs)
	case "check":
		return runCheck(cmdArgs)
	case "clean":
		return runClean(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidInput
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: afs <command> [options]

Commands:
  split   Split a file into hashed parts plus a manifest
  merge   Reconstruct the original file from its parts
  verify  Round-trip a file through split and merge in a scratch dir
  check   Verify parts against the manifest without merging
  clean   Remove a part set and its manifest

The parts location (-dir) is a directory path or a bucket URL
(file://, s3://, gs://).

Run 'afs <command> -h' for command-specific help.`)
}

// exitCode maps a core failure to a process exit code.
func exitCode(err error) int {
	switch partfile.KindOf(err) {
	case partfile.KindInvalidInput:
		return ExitInvalidInput
	case partfile.KindIO:
		return ExitIOError
	case partfile.KindManifest:
		return ExitManifestError
	case partfile.KindIntegrity:
		return ExitIntegrityFailed
	case partfile.KindCanceled:
		return ExitCanceled
	default:
		return ExitGeneralError
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[afs] Received interrupt, shutting down...")
		cancel()
	}()

	return ctx, cancel
}
