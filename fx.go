package entitycaps

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-entitycaps/config"
	"github.com/dep2p/go-entitycaps/internal/caps"
	"github.com/dep2p/go-entitycaps/internal/caps/capstore"
	"github.com/dep2p/go-entitycaps/internal/caps/nodecache"
	"github.com/dep2p/go-entitycaps/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 组装顺序（按依赖）：
//  1. 配置注入
//  2. 持久化缓存（条件加载，装配阶段完成回放）
//  3. 节点缓存单例
//  4. Manager
func buildFxApp(cfg *config.Config, app *App, extra ...fx.Option) (*fx.App, error) {
	// 配置验证（前置）
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		// 配置注入
		fx.Supply(cfg),
	}

	// 持久化缓存（条件加载）
	if cfg.Storage.Enabled {
		modules = append(modules, fx.Provide(
			func(lc fx.Lifecycle) (interfaces.PersistentCache, error) {
				store, err := capstore.Open(capstore.Config{
					Path:       cfg.Storage.DataDir,
					SyncWrites: cfg.Storage.SyncWrites,
					Quiet:      true,
				})
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(_ context.Context) error {
						return store.Close()
					},
				})
				return store, nil
			},
		))
	}

	modules = append(modules,
		nodecache.Module(),
		caps.Module(),

		// 把装配结果回填到 facade
		fx.Invoke(func(m *caps.Manager, c *nodecache.Cache) {
			app.manager = m
			app.cache = c
		}),

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	modules = append(modules, extra...)

	return fx.New(modules...), nil
}
