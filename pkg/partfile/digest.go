package partfile

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"gocloud.dev/blob"
)

// bufferSize is the fixed I/O buffer used for all reads and writes.
// Memory use is bounded by this constant regardless of file size.
const bufferSize = 4 * 1024 * 1024

// Algorithm identifies one of the supported digest algorithms. The set is
// closed; values are validated at the boundary by ParseAlgorithm and never
// dispatched by string elsewhere.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
)

// Algorithms lists the supported algorithms in display order.
var Algorithms = []Algorithm{MD5, SHA1, SHA256, SHA512}

// ParseAlgorithm validates s against the supported set.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case MD5, SHA1, SHA256, SHA512:
		return Algorithm(s), nil
	}
	return "", invalidf("parse algorithm", "unsupported hash algorithm %q (want md5, sha1, sha256, or sha512)", s)
}

// newHash returns a fresh digest state for the algorithm.
func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	}
	return nil, invalidf("hash", "unsupported hash algorithm %q", string(a))
}

// DigestReader hashes r to exhaustion in bufferSize chunks and returns the
// lowercase hex digest. The context is checked between chunks, so a
// cancelled digest stops within one buffer of the cancellation.
func DigestReader(ctx context.Context, r io.Reader, alg Algorithm) (string, error) {
	h, err := alg.newHash()
	if err != nil {
		return "", err
	}
	buf := make([]byte, bufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", wrap(KindCanceled, "digest", err)
		}
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", wrap(KindIO, "digest read", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile hashes the file at path. It works the same whether path is an
// original source or a freshly written merge target.
func DigestFile(ctx context.Context, path string, alg Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", wrap(KindIO, "open "+path, err)
	}
	defer f.Close()
	return DigestReader(ctx, f, alg)
}

// digestObject re-reads a persisted object from the bucket and hashes it.
// Hashing the stored bytes rather than an in-memory copy validates what
// actually made it to storage.
func digestObject(ctx context.Context, bucket *blob.Bucket, key string, alg Algorithm) (string, error) {
	r, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return "", wrap(KindIO, "open part "+key, err)
	}
	defer r.Close()
	return DigestReader(ctx, r, alg)
}
