package driver

import (
	"crypto/sha256"
	"strconv"

	"mslayout/internal/canon"
	"mslayout/internal/project"
	"mslayout/internal/resolver"
)

// CacheKey: H( H(canonical text) || H(top) || H(schema) ). Форматирование
// и комментарии в BSV на ключ не влияют — канонизация их убирает.
func CacheKey(text, top string) project.Digest {
	return cacheKeyCanonical(canon.Canonicalize(text), top)
}

func cacheKeyCanonical(canonical, top string) project.Digest {
	schema := strconv.Itoa(int(diskCacheSchemaVersion)) + "/" + strconv.Itoa(int(resolver.SnapshotVersion))
	return project.Combine(sha256.Sum256([]byte(canonical)),
		sha256.Sum256([]byte(top)),
		sha256.Sum256([]byte(schema)))
}
