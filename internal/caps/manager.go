package caps

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-entitycaps/config"
	"github.com/dep2p/go-entitycaps/internal/caps/hash"
	"github.com/dep2p/go-entitycaps/internal/caps/nodecache"
	"github.com/dep2p/go-entitycaps/pkg/interfaces"
	"github.com/dep2p/go-entitycaps/pkg/lib/log"
	"github.com/dep2p/go-entitycaps/pkg/types"
)

var logger = log.Logger("caps/manager")

// Manager 实体能力管理器
//
// 每个活动会话一个实例，共享进程级节点缓存。
type Manager struct {
	mu sync.Mutex

	// node 本端基础节点 URI
	node string

	// hashMethod 摘要算法名
	hashMethod string

	// version 当前能力版本；hasVersion 为 false 表示尚未计算
	// 或上次计算失败（清除策略）
	version    string
	hasVersion bool

	// listeners 版本变更监听器：句柄 → 回调
	listeners map[string]interfaces.VersionListener

	// peers 对端记录表：对端标识 → node#ver
	//
	// 有界 LRU：冷对端被淘汰只会让外部层重新解析一次，
	// 不影响正确性。
	peers *lru.Cache[string, string]

	// cache 进程级共享节点缓存（注入）
	cache *nodecache.Cache
}

// NewManager 创建能力管理器
//
// registrar 非空时向服务发现层宣告 caps 特性命名空间。
func NewManager(cfg *config.Config, cache *nodecache.Cache, registrar interfaces.DiscoveryRegistrar) (*Manager, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cache == nil {
		return nil, fmt.Errorf("nil node cache")
	}

	size := cfg.Caps.PeerBookSize
	if size <= 0 {
		size = config.DefaultPeerBookSize
	}
	peers, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create peer book: %w", err)
	}

	m := &Manager{
		node:       cfg.Caps.Node,
		hashMethod: cfg.Caps.HashMethod,
		listeners:  make(map[string]interfaces.VersionListener),
		peers:      peers,
		cache:      cache,
	}

	if registrar != nil {
		registrar.AddFeature(types.NamespaceCaps)
	}

	return m, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              本端版本
// ════════════════════════════════════════════════════════════════════════════

// RecomputeVersion 重新计算本端能力版本
//
// 规范化并哈希描述符，把结果存入共享节点缓存（键 node#ver），
// 更新当前版本并同步通知全部监听器。不做去抖：即使输入未变
// 也会重新哈希、重新通知。
//
// 哈希失败时清除当前版本（不保留旧值）、不通知监听器，
// 并返回错误；"计算失败" 与 "从未计算" 对外同为无版本状态。
func (m *Manager) RecomputeVersion(info *types.DiscoverInfo) (string, error) {
	if info == nil {
		info = &types.DiscoverInfo{}
	}

	identity := info.ClientIdentity()

	// 快照扩展表单：规范化遍历期间不受并发修改影响
	extended := info.Extended.Copy()

	canonical := hash.Canonicalize(identity.Type, identity.Name, info.Features, extended)
	ver, err := hash.Hash(m.hashMethod, canonical)

	m.mu.Lock()
	if err != nil {
		m.version = ""
		m.hasVersion = false
		m.mu.Unlock()

		logger.Error("计算能力版本失败", "method", m.hashMethod, "error", err)
		return "", fmt.Errorf("compute caps version: %w", err)
	}

	m.version = ver
	m.hasVersion = true
	node := m.node + "#" + ver

	// 先入缓存再通知：监听器观察到的版本一定可解析
	m.cache.Put(node, info)

	for _, l := range m.listeners {
		l(ver)
	}
	m.mu.Unlock()

	logger.Debug("能力版本已更新", "node", node)
	return ver, nil
}

// CurrentVersion 返回当前能力版本
//
// 第二个返回值为 false 表示尚无版本（从未计算或上次计算失败）。
func (m *Manager) CurrentVersion() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.version, m.hasVersion
}

// Node 返回本端基础节点 URI
func (m *Manager) Node() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.node
}

// SetNode 设置本端基础节点 URI
//
// 只影响后续的 RecomputeVersion，已缓存的条目不变。
func (m *Manager) SetNode(node string) {
	if node == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.node = node
}

// CapsKeyString 返回本端用于出席宣告的 "node#ver"
//
// 尚无版本时返回 ("", false)。
func (m *Manager) CapsKeyString() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasVersion {
		return "", false
	}
	return m.node + "#" + m.version, true
}

// ════════════════════════════════════════════════════════════════════════════
//                              对端记录
// ════════════════════════════════════════════════════════════════════════════

// AddPeerNode 记录对端宣告的能力节点
//
// node 为 "node#ver" 形式。对端标识或节点为空时静默忽略
// （防御语义，不是错误）。
func (m *Manager) AddPeerNode(peer, node string) {
	if peer == "" || node == "" {
		return
	}

	m.peers.Add(peer, node)
}

// RemovePeerNode 移除对端的能力记录
//
// 对端离线（presence unavailable）时由外部投递层调用。
func (m *Manager) RemovePeerNode(peer string) {
	m.peers.Remove(peer)
}

// PeerNode 查询对端宣告的 node#ver
func (m *Manager) PeerNode(peer string) (string, bool) {
	return m.peers.Get(peer)
}

// DiscoverInfoForPeer 按对端查询完整能力描述符
//
// 链式查询：对端记录表 → 共享节点缓存。任一环节缺失时
// 返回 (nil, false)。
func (m *Manager) DiscoverInfoForPeer(peer string) (*types.DiscoverInfo, bool) {
	node, ok := m.peers.Get(peer)
	if !ok {
		return nil, false
	}
	return m.cache.Get(node)
}

// ════════════════════════════════════════════════════════════════════════════
//                              监听器
// ════════════════════════════════════════════════════════════════════════════

// AddVersionListener 注册版本变更监听器
//
// 返回用于注销的句柄。当前已有版本时立即同步补发一次，
// 不存在错过通知的窗口。
func (m *Manager) AddVersionListener(l interfaces.VersionListener) string {
	if l == nil {
		return ""
	}

	id := uuid.NewString()

	m.mu.Lock()
	m.listeners[id] = l
	if m.hasVersion {
		l(m.version)
	}
	m.mu.Unlock()

	return id
}

// RemoveVersionListener 注销监听器（幂等）
func (m *Manager) RemoveVersionListener(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.listeners, id)
}

// ListenerCount 返回已注册的监听器数量
func (m *Manager) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.listeners)
}
