// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，支持从 JSON 加载。
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Identity.Type = "pc"
//	cfg.Identity.Name = "Example Client 1.0"
//
//	// 启用持久化
//	cfg.Storage.Enabled = true
//	cfg.Storage.DataDir = "./data"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dep2p/go-entitycaps/internal/caps/hash"
	"github.com/dep2p/go-entitycaps/pkg/types"
)

var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultNode 默认基础节点 URI
//
// 标识本客户端软件，与版本哈希组成 "node#ver" 缓存键。
const DefaultNode = "https://github.com/dep2p/go-entitycaps"

// DefaultPeerBookSize 默认对端记录表容量
const DefaultPeerBookSize = 4096

// IdentityConfig 本端身份配置
type IdentityConfig struct {
	// Category 身份类别（本配置固定为 "client"）
	Category string `json:"category"`

	// Type 身份类型，例如 "pc"、"bot"
	Type string `json:"type"`

	// Name 软件名称
	Name string `json:"name"`

	// Lang 语言标签（保留，本配置为空）
	Lang string `json:"lang,omitempty"`
}

// CapsConfig 能力管理配置
type CapsConfig struct {
	// Node 基础节点 URI
	Node string `json:"node"`

	// HashMethod 摘要算法（默认 "sha-1"）
	HashMethod string `json:"hash_method"`

	// PeerBookSize 对端记录表容量
	PeerBookSize int `json:"peer_book_size"`
}

// StorageConfig 持久化存储配置
type StorageConfig struct {
	// Enabled 是否启用持久化缓存
	Enabled bool `json:"enabled"`

	// DataDir 数据目录
	DataDir string `json:"data_dir"`

	// SyncWrites 是否同步写入
	SyncWrites bool `json:"sync_writes"`
}

// Config 完整配置结构
//
// 配置按照功能模块组织：
//   - Identity: 本端身份（进入规范串的部分）
//   - Caps: 能力管理（节点 URI、摘要算法、对端表容量）
//   - Storage: 持久化缓存
type Config struct {
	// Identity 本端身份配置
	Identity IdentityConfig `json:"identity"`

	// Caps 能力管理配置
	Caps CapsConfig `json:"caps"`

	// Storage 持久化存储配置
	Storage StorageConfig `json:"storage"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Identity: IdentityConfig{
			Category: types.CategoryClient,
		},
		Caps: CapsConfig{
			Node:         DefaultNode,
			HashMethod:   types.DefaultHashMethod,
			PeerBookSize: DefaultPeerBookSize,
		},
		Storage: StorageConfig{
			Enabled: false,
			DataDir: "./data",
		},
	}
}

// FromJSON 从 JSON 加载配置
//
// 缺省字段取 NewConfig 的默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Caps.Node == "" {
		return fmt.Errorf("%w: empty caps node", ErrInvalidConfig)
	}
	if !hash.Supported(c.Caps.HashMethod) {
		// 算法不可用在装配阶段即可发现，不必等到首次计算
		return fmt.Errorf("%w: unsupported hash method %q", ErrInvalidConfig, c.Caps.HashMethod)
	}
	if c.Caps.PeerBookSize <= 0 {
		return fmt.Errorf("%w: peer book size must be positive", ErrInvalidConfig)
	}
	if c.Storage.Enabled && c.Storage.DataDir == "" {
		return fmt.Errorf("%w: storage enabled without data dir", ErrInvalidConfig)
	}
	return nil
}

// WithIdentity 设置本端身份
func (c *Config) WithIdentity(identityType, name string) *Config {
	c.Identity.Type = identityType
	c.Identity.Name = name
	return c
}

// WithNode 设置基础节点 URI
func (c *Config) WithNode(node string) *Config {
	c.Caps.Node = node
	return c
}

// WithStorage 启用持久化缓存
func (c *Config) WithStorage(dataDir string) *Config {
	c.Storage.Enabled = true
	c.Storage.DataDir = dataDir
	return c
}
