package nodecache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-entitycaps/pkg/types"
)

// fakePersistent 测试用持久化缓存
type fakePersistent struct {
	mu      sync.Mutex
	entries map[string]*types.DiscoverInfo
	addErr  error
}

func newFakePersistent() *fakePersistent {
	return &fakePersistent{entries: make(map[string]*types.DiscoverInfo)}
}

func (f *fakePersistent) AddEntry(key types.CapsKey, info *types.DiscoverInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.entries[key.String()] = info.Copy()
	return nil
}

func (f *fakePersistent) Replay(put func(key types.CapsKey, info *types.DiscoverInfo)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for node, info := range f.entries {
		put(types.ParseCapsKey(node), info)
	}
	return nil
}

func testInfo() *types.DiscoverInfo {
	return &types.DiscoverInfo{
		Identities: []types.Identity{{Category: "client", Type: "pc", Name: "Psi"}},
		Features:   []string{"http://jabber.org/protocol/disco#info"},
	}
}

// ============================================================================
//                              基础读写测试
// ============================================================================

// TestCache_PutGet 测试写入后读取
func TestCache_PutGet(t *testing.T) {
	cache := New()

	cache.Put("http://psi-im.org#abc=", testInfo())

	got, ok := cache.Get("http://psi-im.org#abc=")
	require.True(t, ok)
	assert.Equal(t, "Psi", got.Identities[0].Name)
}

// TestCache_GetMiss 测试未命中
func TestCache_GetMiss(t *testing.T) {
	cache := New()

	got, ok := cache.Get("unknown#ver")
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestCache_PutStripsEnvelope 测试写入时清除信封字段
func TestCache_PutStripsEnvelope(t *testing.T) {
	cache := New()

	info := testInfo()
	info.From = "romeo@montague.lit/orchard"
	info.To = "juliet@capulet.lit"
	info.PacketID = "disco1"
	cache.Put("n#v", info)

	got, ok := cache.Get("n#v")
	require.True(t, ok)
	assert.Empty(t, got.From)
	assert.Empty(t, got.To)
	assert.Empty(t, got.PacketID)

	// 缓存保存深拷贝，调用方后续修改不影响缓存内容
	info.Features[0] = "mutated"
	got2, _ := cache.Get("n#v")
	assert.Equal(t, "http://jabber.org/protocol/disco#info", got2.Features[0])
}

// TestCache_NilArgs 测试空参数静默忽略
func TestCache_NilArgs(t *testing.T) {
	cache := New()

	cache.Put("", testInfo())
	cache.Put("n#v", nil)

	assert.Equal(t, 0, cache.Len())
}

// TestCache_LastWriterWins 测试键冲突后写覆盖
func TestCache_LastWriterWins(t *testing.T) {
	cache := New()

	first := testInfo()
	second := testInfo()
	second.Identities[0].Name = "Psi+"

	cache.Put("n#v", first)
	cache.Put("n#v", second)

	got, ok := cache.Get("n#v")
	require.True(t, ok)
	assert.Equal(t, "Psi+", got.Identities[0].Name)
	assert.Equal(t, 1, cache.Len())
}

// ============================================================================
//                              持久化测试
// ============================================================================

// TestCache_SetPersistentOnce 测试持久化缓存只能注册一次
func TestCache_SetPersistentOnce(t *testing.T) {
	cache := New()

	require.NoError(t, cache.SetPersistent(newFakePersistent()))

	err := cache.SetPersistent(newFakePersistent())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistentCacheAlreadySet)
}

// TestCache_WriteThrough 测试写穿持久层
func TestCache_WriteThrough(t *testing.T) {
	cache := New()
	pc := newFakePersistent()
	require.NoError(t, cache.SetPersistent(pc))

	cache.Put("http://psi-im.org#abc=", testInfo())

	pc.mu.Lock()
	defer pc.mu.Unlock()
	assert.Contains(t, pc.entries, "http://psi-im.org#abc=")
}

// TestCache_WriteThroughFailure 测试写穿失败不影响内存缓存
func TestCache_WriteThroughFailure(t *testing.T) {
	cache := New()
	pc := newFakePersistent()
	pc.addErr = errors.New("disk full")
	require.NoError(t, cache.SetPersistent(pc))

	cache.Put("n#v", testInfo())

	_, ok := cache.Get("n#v")
	assert.True(t, ok)
}

// TestCache_Replay 测试注册时回放
func TestCache_Replay(t *testing.T) {
	pc := newFakePersistent()
	require.NoError(t, pc.AddEntry(
		types.CapsKey{Node: "http://psi-im.org", Version: "abc="}, testInfo()))

	cache := New()
	require.NoError(t, cache.SetPersistent(pc))

	got, ok := cache.Get("http://psi-im.org#abc=")
	require.True(t, ok)
	assert.Equal(t, "Psi", got.Identities[0].Name)
}

// ============================================================================
//                              并发与统计测试
// ============================================================================

// TestCache_Concurrent 测试并发读写
func TestCache_Concurrent(t *testing.T) {
	cache := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Put("n#v", testInfo())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Get("n#v")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
}

// TestCache_Stats 测试统计计数
func TestCache_Stats(t *testing.T) {
	cache := New()

	cache.Put("n#v", testInfo())
	cache.Get("n#v")
	cache.Get("missing#v")

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Puts)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Len)
}
