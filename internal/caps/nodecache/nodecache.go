package nodecache

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-entitycaps/pkg/interfaces"
	"github.com/dep2p/go-entitycaps/pkg/lib/log"
	"github.com/dep2p/go-entitycaps/pkg/types"
)

var logger = log.Logger("caps/nodecache")

// Cache 进程级节点能力缓存
//
// node#ver → DiscoverInfo 的共享映射。整个应用创建一个实例，
// 通过引用注入到每个 Manager。
type Cache struct {
	mu sync.RWMutex

	// entries 缓存映射：node#ver → 描述符
	entries map[string]*types.DiscoverInfo

	// persistent 可选的持久化镜像（注册后不再变更）
	persistent interfaces.PersistentCache

	// 统计计数
	stats struct {
		puts   atomic.Int64
		hits   atomic.Int64
		misses atomic.Int64
	}
}

// New 创建节点能力缓存
func New() *Cache {
	return &Cache{
		entries: make(map[string]*types.DiscoverInfo),
	}
}

// Put 写入缓存条目
//
// node 为 "node#ver" 形式的键。写入前清除描述符的信封字段并
// 深拷贝，调用方保留的引用不会影响缓存内容。配置了持久化缓存
// 时尽力写穿，失败只记日志。
// node 或 info 为空时静默忽略。
func (c *Cache) Put(node string, info *types.DiscoverInfo) {
	if node == "" || info == nil {
		return
	}

	stored := info.Copy()
	stored.StripEnvelope()

	c.mu.Lock()
	c.entries[node] = stored
	pc := c.persistent
	c.mu.Unlock()

	c.stats.puts.Add(1)

	if pc != nil {
		key := types.ParseCapsKey(node)
		if err := pc.AddEntry(key, stored); err != nil {
			logger.Warn("写穿持久化缓存失败", "node", node, "error", err)
		}
	}
}

// Get 查询缓存条目
//
// 返回描述符的深拷贝，未命中时返回 (nil, false)。
func (c *Cache) Get(node string) (*types.DiscoverInfo, bool) {
	c.mu.RLock()
	info, ok := c.entries[node]
	c.mu.RUnlock()

	if !ok {
		c.stats.misses.Add(1)
		return nil, false
	}

	c.stats.hits.Add(1)
	return info.Copy(), true
}

// Len 返回缓存条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// SetPersistent 注册持久化缓存并回放
//
// 注册是一次性的启动顺序约束：重复注册返回
// ErrPersistentCacheAlreadySet，调用方应中止装配。
// 回放在注册时同步完成，先于任何稳态流量；回放条目直接进入
// 内存映射，不再写穿回持久层。
func (c *Cache) SetPersistent(pc interfaces.PersistentCache) error {
	if pc == nil {
		return nil
	}

	c.mu.Lock()
	if c.persistent != nil {
		c.mu.Unlock()
		return ErrPersistentCacheAlreadySet
	}
	c.persistent = pc
	c.mu.Unlock()

	count := 0
	err := pc.Replay(func(key types.CapsKey, info *types.DiscoverInfo) {
		if info == nil {
			return
		}
		stored := info.Copy()
		stored.StripEnvelope()

		c.mu.Lock()
		c.entries[key.String()] = stored
		c.mu.Unlock()
		count++
	})
	if err != nil {
		// 部分条目可能已回放成功，映射保持已加载内容
		logger.Warn("持久化缓存回放出错", "replayed", count, "error", err)
		return err
	}

	logger.Info("持久化缓存已回放", "entries", count)
	return nil
}

// Stats 缓存统计
type Stats struct {
	Puts   int64
	Hits   int64
	Misses int64
	Len    int
}

// GetStats 获取缓存统计
func (c *Cache) GetStats() Stats {
	return Stats{
		Puts:   c.stats.puts.Load(),
		Hits:   c.stats.hits.Load(),
		Misses: c.stats.misses.Load(),
		Len:    c.Len(),
	}
}
