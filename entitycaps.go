// Package entitycaps 实现实体能力（Entity Capabilities）缓存子系统
//
// 为基于出席通知的消息协议计算稳定、可验证的能力版本哈希，
// 并缓存该哈希与完整能力描述符之间的映射：
//   - 规范化 + 哈希：把结构化能力数据确定性地序列化并摘要
//   - 节点缓存：进程级 node#ver → 描述符共享映射，可选持久化
//   - 对端记录：会话级 对端 → node#ver 映射
//
// 传输、报文解析与分发由外部层负责，本包只消费解析好的
// 描述符对象并回答"这个能力集合解析过吗，它的规范身份是什么"。
//
// # 快速开始
//
//	cfg := config.NewConfig().WithIdentity("pc", "Example 1.0")
//	app, err := entitycaps.New(cfg)
//	if err != nil { ... }
//	if err := app.Start(ctx); err != nil { ... }
//	defer app.Stop(ctx)
//
//	mgr := app.Manager()
//	ver, err := mgr.RecomputeVersion(ownInfo)
package entitycaps

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-entitycaps/config"
	"github.com/dep2p/go-entitycaps/internal/caps"
	"github.com/dep2p/go-entitycaps/internal/caps/nodecache"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// ════════════════════════════════════════════════════════════════════════════
//                              App Facade
// ════════════════════════════════════════════════════════════════════════════

// App 实体能力子系统的装配入口
//
// 包装 Fx 应用：按配置装配持久化缓存、节点缓存单例与 Manager。
// 一个 App 对应一个会话级 Manager；多会话共享节点缓存时，
// 直接使用 nodecache 与 caps 包的 Fx 模块自行装配。
type App struct {
	fxApp   *fx.App
	manager *caps.Manager
	cache   *nodecache.Cache
}

// New 创建 App
//
// cfg 为 nil 时使用默认配置。配置了持久化存储时，
// 回放在装配阶段同步完成，先于任何稳态流量。
func New(cfg *config.Config, extra ...fx.Option) (*App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	app := &App{}
	fxApp, err := buildFxApp(cfg, app, extra...)
	if err != nil {
		return nil, err
	}
	if err := fxApp.Err(); err != nil {
		return nil, err
	}

	app.fxApp = fxApp
	return app, nil
}

// Start 启动应用
func (a *App) Start(ctx context.Context) error {
	return a.fxApp.Start(ctx)
}

// Stop 停止应用
func (a *App) Stop(ctx context.Context) error {
	return a.fxApp.Stop(ctx)
}

// Manager 返回能力管理器
func (a *App) Manager() *caps.Manager {
	return a.manager
}

// NodeCache 返回进程级节点缓存
func (a *App) NodeCache() *nodecache.Cache {
	return a.cache
}
