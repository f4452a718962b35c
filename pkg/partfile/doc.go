// Package partfile splits a file into ordered, byte-contiguous parts and
// reconstructs the original from them, with hash-based integrity checks at
// both whole-file and per-part granularity.
//
// Parts, the manifest, and degraded-mode discovery all operate on a
// gocloud.dev/blob bucket, so a part set can live in a local directory
// (fileblob) or in object storage (s3blob, gcsblob) without code changes.
// Sources and merge outputs are local files.
//
// # Splitting
//
// [Split] partitions a source according to a [Sizing] directive (a fixed
// part count via [FixedCount], a maximum part size via [MaxPartSize], or
// the default via [DefaultSizing]), writes one object per part, hashes each
// part
// from its persisted bytes, and finishes by writing a manifest that binds
// the parts back to the original.
//
// # Merging
//
// [Merge] concatenates parts back into one file. With a manifest present
// every part is verified first ([Check]) and the finished output is
// re-hashed against the manifest's whole-file hash. Without a manifest,
// parts are discovered by filename pattern and concatenated in lexical
// order; the result is marked degraded and unverified.
//
// # Verification
//
// [Check] verifies a part set against its manifest without merging.
// [SelfCheck] proves a file survives a full round trip through a scratch
// directory that is always cleaned up.
//
// # Storage layout
//
//	{bucket}/{name}.part000
//	{bucket}/{name}.part001
//	{bucket}/{name}.manifest.json
//
// # Manifest format
//
//	{
//	  "original_file": "archive.tar",
//	  "original_size": 1073741824,
//	  "original_hash": "9c3af2...",
//	  "hash_algorithm": "sha256",
//	  "num_parts": 24,
//	  "version": "1",
//	  "parts": [
//	    {"index": 0, "filename": "archive.tar.part000", "size": 44739243, "hash": "ab1d04..."},
//	    ...
//	  ]
//	}
//
// # Failure model
//
// Every error carries one [Kind]; use [KindOf] to map failures to exit
// codes or policy without parsing message text. Operations fail fast and
// run single-threaded: bytes move strictly in index order
// through one fixed-size buffer, and cancellation via context stops within
// one buffer of the interrupt. A failed split leaves already-written parts
// behind; a failed merge leaves a truncated output. Concurrent invocations
// against the same part set are unsupported and undefined.
//
// See example_test.go for usage examples.
package partfile
