package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizcourse"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// CourseKey is the key of a cached course detail.
func CourseKey(id int64) string {
	return GenerateCacheKey("course", "detail", strconv.FormatInt(id, 10))
}

// CourseListKey is the key of the cached course list.
func CourseListKey() string {
	return GenerateCacheKey("course", "list", "all")
}
