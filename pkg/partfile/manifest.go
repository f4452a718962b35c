package partfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// ManifestVersion is the format version written into every manifest.
const ManifestVersion = "1"

const manifestSuffix = ".manifest.json"

// PartRecord describes one persisted part. Records are created immediately
// after the part's bytes are written and are immutable afterward.
type PartRecord struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash"`
}

// Manifest binds an ordered set of parts back to one original file. It is
// written once at the end of a successful split and read wholesale by merge
// and check; a re-split overwrites it entirely.
type Manifest struct {
	OriginalFile  string       `json:"original_file"`
	OriginalSize  int64        `json:"original_size"`
	OriginalHash  string       `json:"original_hash"`
	HashAlgorithm Algorithm    `json:"hash_algorithm"`
	NumParts      int          `json:"num_parts"`
	Version       string       `json:"version"`
	Parts         []PartRecord `json:"parts"`
}

// PartName returns the deterministic object name for part idx of base:
// base.partNNN with the index zero-padded to at least three digits.
func PartName(base string, idx int) string {
	return fmt.Sprintf("%s.part%03d", base, idx)
}

// partPattern is the degraded-mode discovery pattern: ".part" followed by
// exactly three digits at the end of the key.
var partPattern = regexp.MustCompile(`\.part\d{3}$`)

// ManifestKey returns the object key of the manifest for base.
func ManifestKey(base string) string {
	return base + manifestSuffix
}

// validate checks the structural invariants: num_parts matches the record
// count, part sizes sum to the original size, indices are contiguous from
// zero, and the algorithm is one of the supported set.
func (m *Manifest) validate() error {
	if m.OriginalFile == "" {
		return fmt.Errorf("missing original_file")
	}
	if m.OriginalHash == "" {
		return fmt.Errorf("missing original_hash")
	}
	if _, err := ParseAlgorithm(string(m.HashAlgorithm)); err != nil {
		return fmt.Errorf("unsupported hash_algorithm %q", string(m.HashAlgorithm))
	}
	if m.NumParts < 1 {
		return fmt.Errorf("num_parts must be at least 1, got %d", m.NumParts)
	}
	if m.NumParts != len(m.Parts) {
		return fmt.Errorf("num_parts is %d but manifest has %d part records", m.NumParts, len(m.Parts))
	}
	var total int64
	for i, p := range m.Parts {
		if p.Index != i {
			return fmt.Errorf("part record %d has index %d", i, p.Index)
		}
		if p.Filename == "" {
			return fmt.Errorf("part %d has no filename", i)
		}
		if p.Size < 0 {
			return fmt.Errorf("part %d has negative size %d", i, p.Size)
		}
		if p.Hash == "" {
			return fmt.Errorf("part %d has no hash", i)
		}
		total += p.Size
	}
	if total != m.OriginalSize {
		return fmt.Errorf("part sizes sum to %d, want original_size %d", total, m.OriginalSize)
	}
	return nil
}

// WriteManifest validates and serializes m into the bucket, overwriting any
// previous manifest for the same original file.
func WriteManifest(ctx context.Context, bucket *blob.Bucket, m *Manifest) error {
	if err := m.validate(); err != nil {
		return manifestf("write manifest", "%v", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return manifestf("write manifest", "marshal: %v", err)
	}
	if err := bucket.WriteAll(ctx, ManifestKey(m.OriginalFile), data, nil); err != nil {
		return wrap(KindIO, "write manifest", err)
	}
	return nil
}

// ReadManifest loads and validates the manifest for base. A missing
// manifest object yields an error wrapping ErrNoManifest; a present but
// malformed document is a hard manifest failure.
func ReadManifest(ctx context.Context, bucket *blob.Bucket, base string) (*Manifest, error) {
	key := ManifestKey(base)
	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		if isNotExist(err) {
			return nil, &Error{Kind: KindManifest, Op: "read manifest", Err: fmt.Errorf("%w: %s", ErrNoManifest, key)}
		}
		return nil, wrap(KindIO, "read manifest "+key, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, manifestf("read manifest", "unmarshal %s: %v", key, err)
	}
	if err := m.validate(); err != nil {
		return nil, manifestf("read manifest", "%s: %v", key, err)
	}
	return &m, nil
}

// ListParts discovers part objects for base without a manifest: every key
// under the base prefix matching the .partNNN pattern, in lexical order.
// This is the degraded path; no per-part verification is possible.
func ListParts(ctx context.Context, bucket *blob.Bucket, base string) ([]string, error) {
	iter := bucket.List(&blob.ListOptions{Prefix: base})
	var keys []string
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrap(KindIO, "list parts", err)
		}
		if partPattern.MatchString(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// isNotExist reports whether err indicates a missing object.
func isNotExist(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}
