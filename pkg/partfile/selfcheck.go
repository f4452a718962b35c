package partfile

import (
	"context"
	"os"
	"path/filepath"

	"gocloud.dev/blob/fileblob"
)

// SelfCheckResult reports a round-trip verification.
type SelfCheckResult struct {
	// Match is true when the merged copy hashed identically to the
	// original. A mismatch is a result, not an error.
	Match        bool
	Parts        int
	OriginalHash string
	MergedHash   string
}

// SelfCheck proves a file survives a split/merge round trip: it hashes the
// source, splits it into a scratch directory, merges the scratch parts back
// into one file, hashes that, and compares the two digests. No manifest is
// persisted.
//
// The scratch directory is created fresh, is exclusive to this call, and is
// removed on every return path, including cancellation and mid-pipeline
// failure.
func SelfCheck(ctx context.Context, srcPath string, sizing Sizing, alg Algorithm, options ...Option) (*SelfCheckResult, error) {
	opts := applyOptions(options)
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return nil, wrap(KindIO, "stat source", err)
	}
	if info.Size() == 0 {
		return nil, invalidf("self-check", "source %s is empty", srcPath)
	}
	plan, err := PlanParts(info.Size(), sizing)
	if err != nil {
		return nil, err
	}

	originalHash, err := DigestFile(ctx, srcPath, alg)
	if err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp("", "afs-verify-")
	if err != nil {
		return nil, wrap(KindIO, "create scratch dir", err)
	}
	defer os.RemoveAll(scratch)

	bucket, err := fileblob.OpenBucket(scratch, &fileblob.Options{
		Metadata: fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, wrap(KindIO, "open scratch dir", err)
	}
	defer bucket.Close()

	src, err := os.Open(srcPath)
	if err != nil {
		return nil, wrap(KindIO, "open source", err)
	}
	defer src.Close()

	base := filepath.Base(srcPath)
	records, err := writeParts(ctx, bucket, src, base, plan, alg, opts)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Filename
	}
	merged := filepath.Join(scratch, base+".merged")
	if _, err := concat(ctx, bucket, keys, merged, Options{}); err != nil {
		return nil, err
	}

	mergedHash, err := DigestFile(ctx, merged, alg)
	if err != nil {
		return nil, err
	}

	return &SelfCheckResult{
		Match:        originalHash == mergedHash,
		Parts:        len(records),
		OriginalHash: originalHash,
		MergedHash:   mergedHash,
	}, nil
}
