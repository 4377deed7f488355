package s3

import "fmt"

// ObjectKey derives the storage key for a document from its content hash.
// The first two byte-pairs of the hex digest become directory levels, which
// spreads objects evenly and keeps any one prefix from growing unbounded:
//
//	documents/ab/cd/abcdef...123.pdf
//
// The same bytes always land on the same key, so duplicate uploads are
// idempotent at the storage layer too.
func ObjectKey(contentHash, ext string) string {
	if len(contentHash) < 4 {
		return fmt.Sprintf("documents/__/__/%s%s", contentHash, ext)
	}
	return fmt.Sprintf("documents/%s/%s/%s%s", contentHash[0:2], contentHash[2:4], contentHash, ext)
}
