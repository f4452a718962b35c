package partfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
)

// SplitResult reports a completed split.
type SplitResult struct {
	Manifest    *Manifest
	ManifestKey string
	Parts       int
}

// Split partitions the file at srcPath into the bucket according to sizing,
// hashing every part and the original with alg, and finishes by writing the
// manifest. The source is read once, sequentially, through the fixed I/O
// buffer; each part is re-read from the bucket after its writer commits so
// the recorded hash covers the persisted bytes.
//
// On failure, parts already written are left in the bucket; only a
// successful split produces a manifest.
func Split(ctx context.Context, bucket *blob.Bucket, srcPath string, sizing Sizing, alg Algorithm, options ...Option) (*SplitResult, error) {
	opts := applyOptions(options)
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return nil, wrap(KindIO, "stat source", err)
	}
	if info.IsDir() {
		return nil, invalidf("split", "source %s is a directory", srcPath)
	}
	if info.Size() == 0 {
		return nil, invalidf("split", "source %s is empty", srcPath)
	}

	plan, err := PlanParts(info.Size(), sizing)
	if err != nil {
		return nil, err
	}

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

	// The whole-file hash is computed independently of the per-part
	// hashes, so the manifest stays self-certifying.
	originalHash, err := DigestFile(ctx, srcPath, alg)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		OriginalFile:  base,
		OriginalSize:  info.Size(),
		OriginalHash:  originalHash,
		HashAlgorithm: alg,
		NumParts:      len(records),
		Version:       ManifestVersion,
		Parts:         records,
	}
	if err := WriteManifest(ctx, bucket, m); err != nil {
		return nil, err
	}

	return &SplitResult{
		Manifest:    m,
		ManifestKey: ManifestKey(base),
		Parts:       len(records),
	}, nil
}

// writeParts writes one object per planned part, in index order, and
// returns the part records. src must be positioned at the start of the
// first planned byte.
func writeParts(ctx context.Context, bucket *blob.Bucket, src io.Reader, base string, plan Plan, alg Algorithm, opts Options) ([]PartRecord, error) {
	buf := make([]byte, bufferSize)
	records := make([]PartRecord, 0, plan.Count())
	for i, length := range plan.Lengths {
		key := PartName(base, i)
		if err := writePart(ctx, bucket, key, src, length, buf); err != nil {
			return nil, err
		}
		sum, err := digestObject(ctx, bucket, key, alg)
		if err != nil {
			return nil, err
		}
		records = append(records, PartRecord{
			Index:    i,
			Filename: key,
			Size:     length,
			Hash:     sum,
		})
		if opts.Progress != nil {
			opts.Progress(i, length)
		}
	}
	return records, nil
}

// writePart copies exactly length bytes from src into a new object. The
// context is checked before each bounded read, so cancellation stops after
// at most one buffer-sized write.
func writePart(ctx context.Context, bucket *blob.Bucket, key string, src io.Reader, length int64, buf []byte) error {
	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return wrap(KindIO, "create part "+key, err)
	}

	remaining := length
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			w.Close()
			return wrap(KindCanceled, "write part "+key, err)
		}
		n := int64(len(buf))
		if remaining < n {
			n = remaining
		}
		read, err := io.ReadFull(src, buf[:n])
		if err != nil {
			w.Close()
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				// Planner/size mismatch: the source ran out before the
				// plan did. Fatal; partial output stays behind.
				return wrap(KindIO, "write part "+key,
					fmt.Errorf("source exhausted with %d bytes still planned", remaining-int64(read)))
			}
			return wrap(KindIO, "read source", err)
		}
		if _, err := w.Write(buf[:read]); err != nil {
			w.Close()
			return wrap(KindIO, "write part "+key, err)
		}
		remaining -= int64(read)
	}

	if err := w.Close(); err != nil {
		return wrap(KindIO, "commit part "+key, err)
	}
	return nil
}
