package hash

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	gohash "hash"

	"github.com/dep2p/go-entitycaps/pkg/types"
)

// digestFunc 摘要构造函数
type digestFunc func() gohash.Hash

// digests 已注册的摘要算法
//
// 键为协议层的算法名（小写，XEP-0115 记法）。
// 本配置默认 sha-1；sha-256 为面向未来配置的备用项。
var digests = map[string]digestFunc{
	"sha-1":   sha1.New,
	"sha-256": sha256.New,
}

// Supported 检查算法是否可用
func Supported(method string) bool {
	_, ok := digests[method]
	return ok
}

// Hash 对规范串计算版本令牌
//
// 对 UTF-8 字节做摘要后以标准 Base64（无换行）编码。
// 算法未注册时返回 ErrUnsupportedAlgorithm；
// 计算失败与"无版本"是两种状态，调用方不得混同。
func Hash(method, canonical string) (string, error) {
	newDigest, ok := digests[method]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, method)
	}

	d := newDigest()
	d.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(d.Sum(nil)), nil
}

// Version 规范化并计算版本令牌
func Version(method, identityType, identityName string, features []string, extended *types.DataForm) (string, error) {
	return Hash(method, Canonicalize(identityType, identityName, features, extended))
}
