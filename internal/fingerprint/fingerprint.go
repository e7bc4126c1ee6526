// Package fingerprint derives the stable identity used for deduplication.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Compute hashes a source name and a content-derived key into a stable
// hexadecimal fingerprint. The same logical item from the same source always
// yields the same value across runs: both inputs are lowercased, trimmed and
// whitespace-collapsed before hashing, so formatting drift between fetches
// does not change identity. An empty raw key still produces a deterministic
// (source-only) fingerprint.
func Compute(sourceName, rawKey string) string {
	sum := sha256.Sum256([]byte(normalize(sourceName) + "\n" + normalize(rawKey)))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
