package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

func RandomString(length int) string {
	bytes := make([]byte, length)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RevisionRange returns every valid revision index of a pad whose revision
// count is head: 0..head inclusive.
func RevisionRange(head int) []int {
	if head < 0 {
		return []int{}
	}
	revs := make([]int, head+1)
	for i := range revs {
		revs[i] = i
	}
	return revs
}

// TrimAPIKey removes the whitespace editors and APIKEY.txt generators leave around a key.
func TrimAPIKey(key string) string {
	return strings.TrimSpace(key)
}
