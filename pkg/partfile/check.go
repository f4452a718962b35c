package partfile

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
)

// Check verifies every part named by the manifest, in manifest order,
// without merging. For each part it confirms existence, then size (cheap,
// from object attributes), then the hash. It stops at the first failure.
//
// The three outcomes are distinguishable with errors.Is: ErrPartMissing,
// ErrSizeMismatch, ErrHashMismatch. All three carry KindIntegrity.
func Check(ctx context.Context, bucket *blob.Bucket, m *Manifest) error {
	for _, p := range m.Parts {
		attrs, err := bucket.Attributes(ctx, p.Filename)
		if err != nil {
			if isNotExist(err) {
				return &Error{Kind: KindIntegrity, Op: "check",
					Err: fmt.Errorf("part %d: %w: %s", p.Index, ErrPartMissing, p.Filename)}
			}
			return wrap(KindIO, "check part "+p.Filename, err)
		}
		if attrs.Size != p.Size {
			return &Error{Kind: KindIntegrity, Op: "check",
				Err: fmt.Errorf("part %d (%s): %w: recorded %d bytes, found %d",
					p.Index, p.Filename, ErrSizeMismatch, p.Size, attrs.Size)}
		}
		sum, err := digestObject(ctx, bucket, p.Filename, m.HashAlgorithm)
		if err != nil {
			return err
		}
		if sum != p.Hash {
			return &Error{Kind: KindIntegrity, Op: "check",
				Err: fmt.Errorf("part %d (%s): %w: recorded %s, computed %s",
					p.Index, p.Filename, ErrHashMismatch, p.Hash, sum)}
		}
	}
	return nil
}
