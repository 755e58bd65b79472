// Package hash computes and verifies file digests for downloaded artifacts.
package hash

import (
	"crypto/md5"  //nolint:gosec // legacy repositories still publish md5 sums
	"crypto/sha1" //nolint:gosec // legacy repositories still publish sha1 sums
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

// DefaultType is the digest algorithm assumed when a declaration carries a
// hash without naming its type.
const DefaultType = "sha256"

func newHasher(hashType string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(hashType)) {
	case "md5":
		return md5.New(), nil //nolint:gosec
	case "sha1":
		return sha1.New(), nil //nolint:gosec
	case "sha256", "":
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash type %q", hashType)
	}
}

// File computes the hex-encoded digest of the file at path using the given
// hash type (md5, sha1 or sha256; empty defaults to sha256).
func File(path, hashType string) (string, error) {
	h, err := newHasher(hashType)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(h, f); err != nil {
		return "", pkgerrors.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile compares the file's digest against the expected hex value and
// returns ErrFileHashMismatch when they differ.
func VerifyFile(path, hashType, expected string) error {
	got, err := File(path, hashType)
	if err != nil {
		return err
	}
	if got != normalizeHex(expected) {
		return fmt.Errorf("%s: got %s, want %s: %w", path, got, normalizeHex(expected), pkgerrors.ErrFileHashMismatch)
	}
	return nil
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
