package hash

import "errors"

var (
	// ErrUnsupportedAlgorithm 摘要算法不可用
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)
