package partfile

import (
	"context"
	"errors"
	"io"
	"os"

	"gocloud.dev/blob"
)

// MergeResult reports a completed merge.
type MergeResult struct {
	OutputPath   string
	BytesWritten int64

	// Verified is true when the merged output's whole-file hash was
	// checked against a manifest and matched.
	Verified bool

	// Degraded is true when no manifest was present and parts were
	// discovered by filename pattern in lexical order.
	Degraded bool
}

// Merge reconstructs the original file named base from parts in the bucket,
// writing it to outPath.
//
// With a manifest present, every part is verified (existence, size, hash)
// before any byte is written, parts are concatenated in manifest order, and
// the finished output is re-hashed against the manifest's whole-file hash.
// A post-merge hash mismatch is a hard failure, but the output file is left
// on disk for the caller to discard.
//
// Without a manifest, parts matching base.partNNN are concatenated in
// lexical order with no verification; the result is marked Degraded. A
// manifest that exists but fails to parse is never downgraded to the
// degraded path.
func Merge(ctx context.Context, bucket *blob.Bucket, base, outPath string, options ...Option) (*MergeResult, error) {
	opts := applyOptions(options)

	m, err := ReadManifest(ctx, bucket, base)
	degraded := false
	var keys []string
	switch {
	case err == nil:
		if err := Check(ctx, bucket, m); err != nil {
			return nil, err
		}
		keys = make([]string, len(m.Parts))
		for i, p := range m.Parts {
			keys[i] = p.Filename
		}
	case errors.Is(err, ErrNoManifest):
		degraded = true
		keys, err = ListParts(ctx, bucket, base)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, invalidf("merge", "no manifest and no parts found for %q", base)
		}
	default:
		return nil, err
	}

	written, err := concat(ctx, bucket, keys, outPath, opts)
	if err != nil {
		return nil, err
	}

	result := &MergeResult{
		OutputPath:   outPath,
		BytesWritten: written,
		Degraded:     degraded,
	}
	if degraded {
		return result, nil
	}

	sum, err := DigestFile(ctx, outPath, m.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	if sum != m.OriginalHash {
		// The bytes were written but cannot be trusted. Deliberately not
		// deleted; discarding is the caller's choice.
		return nil, integrityf("merge", "merged output hash %s does not match manifest hash %s (output kept at %s)",
			sum, m.OriginalHash, outPath)
	}
	result.Verified = true
	return result, nil
}

// concat streams each part into a freshly created output file, in the
// given order, through the fixed I/O buffer. If interrupted, the output is
// left truncated and must be discarded by the caller.
func concat(ctx context.Context, bucket *blob.Bucket, keys []string, outPath string, opts Options) (int64, error) {
	out, err := os.Create(outPath)
	if err != nil {
		return 0, wrap(KindIO, "create output", err)
	}

	buf := make([]byte, bufferSize)
	var written int64
	for i, key := range keys {
		n, err := appendObject(ctx, bucket, key, out, buf)
		written += n
		if err != nil {
			out.Close()
			return written, err
		}
		if opts.Progress != nil {
			opts.Progress(i, n)
		}
	}

	if err := out.Close(); err != nil {
		return written, wrap(KindIO, "close output", err)
	}
	return written, nil
}

// appendObject copies one object into out. Each part is opened, streamed,
// and closed before the next, keeping one reader open at a time.
func appendObject(ctx context.Context, bucket *blob.Bucket, key string, out *os.File, buf []byte) (int64, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return 0, wrap(KindIO, "open part "+key, err)
	}
	defer r.Close()

	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, wrap(KindCanceled, "merge part "+key, err)
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := out.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, wrap(KindIO, "write output", werr)
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, wrap(KindIO, "read part "+key, rerr)
		}
	}
}
