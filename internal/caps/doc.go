// Package caps 实现实体能力管理器
//
// Manager 是哈希/缓存子系统的编排层：
//   - 构造时向服务发现层宣告 caps 特性命名空间
//   - 重新计算本端能力版本并写入共享节点缓存
//   - 记录对端宣告的 node#ver，并按对端查询完整描述符
//   - 维护版本变更监听器（订阅即补发当前版本）
//
// # 所有权
//
// 节点缓存（nodecache.Cache）是进程级共享单例，通过引用注入；
// 对端记录表、当前版本与监听器集合归单个 Manager 实例所有，
// 每个活动会话创建一个 Manager。
//
// # 并发安全
//
// Manager 的可变状态由单个互斥锁保护，重算-通知序列对并发的
// AddVersionListener 原子，不存在错过通知的窗口。监听器在持锁
// 状态下同步调用，回调内不得再调用本 Manager 的方法。
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：internal/caps/hash, internal/caps/nodecache, config,
//     pkg/types, pkg/interfaces
//   - 被依赖：根 facade
package caps
