package indexer

import (
	"crypto/sha256"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// Fingerprint computes the content hash used for change detection.
// SHA-256 keeps the probability that two distinct contents are accepted as
// "unchanged" negligible, which a short rolling hash cannot guarantee.
func Fingerprint(content []byte) types.Fingerprint {
	return types.Fingerprint(sha256.Sum256(content))
}
