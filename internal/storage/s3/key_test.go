package s3

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyLayout(t *testing.T) {
	sum := sha256.Sum256([]byte("same bytes"))
	hash := hex.EncodeToString(sum[:])

	key := ObjectKey(hash, ".pdf")
	assert.Equal(t, "documents/"+hash[0:2]+"/"+hash[2:4]+"/"+hash+".pdf", key)
}

func TestObjectKeyDeterministic(t *testing.T) {
	sum := sha256.Sum256([]byte("same bytes"))
	hash := hex.EncodeToString(sum[:])

	assert.Equal(t, ObjectKey(hash, ".docx"), ObjectKey(hash, ".docx"))
}

func TestObjectKeyShortHash(t *testing.T) {
	assert.Equal(t, "documents/__/__/ab.txt", ObjectKey("ab", ".txt"))
}
