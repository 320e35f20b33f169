package nodecache

import "errors"

var (
	// ErrPersistentCacheAlreadySet 持久化缓存重复注册
	ErrPersistentCacheAlreadySet = errors.New("persistent cache was already set")
)
