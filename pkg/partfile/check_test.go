package partfile

import (
	"context"
	"errors"
	"testing"

	"gocloud.dev/blob"
)

// splitForCheck splits a 5000-byte source into three parts on a fresh
// bucket and returns the bucket and manifest.
func splitForCheck(t *testing.T) (ctx context.Context, bucket *blob.Bucket, m *Manifest) {
	t.Helper()
	ctx = context.Background()
	bucket = testBucket(t)
	src := writeSource(t, "data.bin", 5000)
	result, err := Split(ctx, bucket, src, FixedCount(3), SHA256)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	return ctx, bucket, result.Manifest
}

func TestCheckPasses(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)
	if err := Check(ctx, bucket, m); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckMissingPart(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)
	if err := bucket.Delete(ctx, m.Parts[1].Filename); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	err := Check(ctx, bucket, m)
	if !errors.Is(err, ErrPartMissing) {
		t.Errorf("expected ErrPartMissing, got %v", err)
	}
	if KindOf(err) != KindIntegrity {
		t.Errorf("expected KindIntegrity, got %v", KindOf(err))
	}
}

func TestCheckTruncatedPart(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)

	data, err := bucket.ReadAll(ctx, m.Parts[0].Filename)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if err := bucket.WriteAll(ctx, m.Parts[0].Filename, data[:len(data)-1], nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	err = Check(ctx, bucket, m)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestCheckBitFlipSameSize(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)

	data, err := bucket.ReadAll(ctx, m.Parts[2].Filename)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	data[len(data)/2] ^= 0x01
	if err := bucket.WriteAll(ctx, m.Parts[2].Filename, data, nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	err = Check(ctx, bucket, m)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
	if KindOf(err) != KindIntegrity {
		t.Errorf("expected KindIntegrity, got %v", KindOf(err))
	}
}

func TestCheckReplacedPartReportsSizeFirst(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)

	// A part replaced by a single byte fails the size comparison; the
	// hash is never computed.
	if err := bucket.WriteAll(ctx, m.Parts[1].Filename, []byte{0xFF}, nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	err := Check(ctx, bucket, m)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
	if errors.Is(err, ErrHashMismatch) {
		t.Error("size mismatch must not also report a hash mismatch")
	}
}

func TestCheckStopsAtFirstFailure(t *testing.T) {
	ctx, bucket, m := splitForCheck(t)

	// Corrupt part 0 and delete part 2: the earlier failure wins.
	if err := bucket.WriteAll(ctx, m.Parts[0].Filename, []byte{0x00}, nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := bucket.Delete(ctx, m.Parts[2].Filename); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	err := Check(ctx, bucket, m)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch from part 0, got %v", err)
	}
	if errors.Is(err, ErrPartMissing) {
		t.Error("later missing part must not be reported before the first failure")
	}
}
