package nodecache

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-entitycaps/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Fx 依赖参数
type Params struct {
	fx.In

	// Persistent 可选的持久化缓存实现
	Persistent interfaces.PersistentCache `optional:"true"`
}

// Result Fx 模块输出
type Result struct {
	fx.Out

	Cache *Cache
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("nodecache",
		fx.Provide(ProvideCache),
	)
}

// ProvideCache 提供进程级缓存单例
//
// 配置了持久化缓存时在装配阶段完成注册与回放，
// 保证回放先于任何稳态流量。
func ProvideCache(p Params) (Result, error) {
	cache := New()

	if p.Persistent != nil {
		if err := cache.SetPersistent(p.Persistent); err != nil {
			return Result{}, err
		}
	}

	return Result{Cache: cache}, nil
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "nodecache"
	// Description 模块描述
	Description = "进程级节点能力缓存，支持可选持久化写穿"
)
