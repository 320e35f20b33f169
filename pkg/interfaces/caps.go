// Package interfaces 定义对外契约
//
// 只包含接口与回调类型定义，具体实现位于 internal/ 下的各组件包，
// 实现包内通过 var _ 断言保证接口满足。
package interfaces

import "github.com/dep2p/go-entitycaps/pkg/types"

// PersistentCache 持久化能力缓存接口
//
// 节点缓存的可插拔持久化镜像。实现可以异步或批量落盘，
// 但 Replay 必须在注册时同步完成一次，且先于任何稳态流量。
type PersistentCache interface {
	// AddEntry 持久化一条缓存条目
	//
	// 写入失败不会回滚内存缓存，调用方按尽力而为处理。
	AddEntry(key types.CapsKey, info *types.DiscoverInfo) error

	// Replay 回放持久化的全部条目
	//
	// 对每条已存储的条目调用 put。注册时恰好调用一次。
	Replay(put func(key types.CapsKey, info *types.DiscoverInfo)) error
}

// DiscoveryRegistrar 服务发现注册接口
//
// Manager 构造时通过它向服务发现层宣告 caps 特性命名空间。
// 由外部的发现层实现。
type DiscoveryRegistrar interface {
	// AddFeature 宣告支持指定特性
	AddFeature(feature string)
}

// VersionListener 版本变更监听回调
//
// 本端能力版本重新计算后同步触发，多个监听器之间无顺序保证。
type VersionListener func(version string)
