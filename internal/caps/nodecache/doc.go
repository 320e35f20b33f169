// Package nodecache 实现进程级的节点能力缓存
//
// 维护 node#ver → DiscoverInfo 的权威映射，供同进程内的全部
// 会话共享。按不变量，相同键的写入携带相同的描述符，键冲突
// 无害，采用后写覆盖。条目只插入或在启动时回放，从不原位修改。
//
// # 持久化
//
// 可选注册一个 PersistentCache 作为持久化镜像：注册是一次性的，
// 注册时同步回放全部持久化条目；此后每次 Put 尽力写穿到持久层，
// 写穿失败只记日志，不影响内存缓存的正确性。
//
// # 并发安全
//
// Cache 使用 sync.RWMutex 保护映射，读写均可并发调用；
// 统计计数使用 atomic。
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：pkg/types, pkg/interfaces, pkg/lib/log
//   - 被依赖：internal/caps（Manager）
package nodecache
