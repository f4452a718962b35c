package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// openBucket opens the parts location. Anything with a URL scheme is
// handed to gocloud as-is; a bare filesystem path becomes a fileblob
// bucket, created if necessary.
func openBucket(ctx context.Context, dir string) (*blob.Bucket, error) {
	if strings.Contains(dir, "://") {
		return blob.OpenBucket(ctx, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(abs, &fileblob.Options{
		Metadata: fileblob.MetadataDontWrite,
	})
}
