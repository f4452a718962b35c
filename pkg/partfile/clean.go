package partfile

import (
	"context"
	"errors"

	"gocloud.dev/blob"
)

// Clean removes the part set for base from the bucket: every part the
// manifest names, then the manifest itself. Parts that are already gone are
// skipped. Without a manifest it falls back to deleting whatever matches
// the degraded-mode part pattern, so interrupted splits can be cleaned up
// too. Returns the number of parts removed.
func Clean(ctx context.Context, bucket *blob.Bucket, base string) (int, error) {
	m, err := ReadManifest(ctx, bucket, base)
	if err != nil {
		if !errors.Is(err, ErrNoManifest) {
			return 0, err
		}
		return cleanOrphans(ctx, bucket, base)
	}

	removed := 0
	for _, p := range m.Parts {
		if err := bucket.Delete(ctx, p.Filename); err != nil {
			if isNotExist(err) {
				continue
			}
			return removed, wrap(KindIO, "delete part "+p.Filename, err)
		}
		removed++
	}
	if err := bucket.Delete(ctx, ManifestKey(base)); err != nil && !isNotExist(err) {
		return removed, wrap(KindIO, "delete manifest", err)
	}
	return removed, nil
}

// cleanOrphans deletes pattern-matched parts left behind without a
// manifest (for example by an aborted split).
func cleanOrphans(ctx context.Context, bucket *blob.Bucket, base string) (int, error) {
	keys, err := ListParts(ctx, bucket, base)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, invalidf("clean", "no manifest and no parts found for %q", base)
	}
	removed := 0
	for _, key := range keys {
		if err := bucket.Delete(ctx, key); err != nil {
			if isNotExist(err) {
				continue
			}
			return removed, wrap(KindIO, "delete part "+key, err)
		}
		removed++
	}
	return removed, nil
}
