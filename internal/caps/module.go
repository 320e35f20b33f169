package caps

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-entitycaps/config"
	"github.com/dep2p/go-entitycaps/internal/caps/nodecache"
	"github.com/dep2p/go-entitycaps/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Fx 依赖参数
type Params struct {
	fx.In

	Cfg       *config.Config
	Cache     *nodecache.Cache
	Registrar interfaces.DiscoveryRegistrar `optional:"true"`
}

// Result Fx 模块输出
type Result struct {
	fx.Out

	Manager *Manager
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("caps",
		fx.Provide(ProvideManager),
	)
}

// ProvideManager 提供 Manager 实例
func ProvideManager(p Params) (Result, error) {
	m, err := NewManager(p.Cfg, p.Cache, p.Registrar)
	if err != nil {
		return Result{}, err
	}
	return Result{Manager: m}, nil
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "caps"
	// Description 模块描述
	Description = "实体能力管理器，编排版本哈希、节点缓存与对端记录"
)
