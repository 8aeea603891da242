package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// GenerateQueryHash builds a deterministic cache key for a query over the
// given resource type. Filter keys are sorted so the same query always maps
// to the same key regardless of map iteration order.
func GenerateQueryHash(resourceType string, filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s", resourceType)
	for _, key := range keys {
		query += fmt.Sprintf("&%s=%s", key, filters[key])
	}

	hash := sha256.New()
	hash.Write([]byte(query))
	hashStr := hex.EncodeToString(hash.Sum(nil))

	// The resourceType prefix groups keys so invalidation can target one
	// resource with a single SCAN pattern.
	return fmt.Sprintf("%s:%s", resourceType, hashStr)
}
