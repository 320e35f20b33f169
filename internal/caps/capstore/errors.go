package capstore

import "errors"

var (
	// ErrClosed 存储已关闭
	ErrClosed = errors.New("capstore closed")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid capstore config")
)
