// Package capstore 实现 BadgerDB 持久化能力缓存
//
// interfaces.PersistentCache 的默认实现：把节点缓存条目以 JSON
// 形式落盘，进程重启后通过 Replay 回放，避免对相同能力集合的
// 重复发现查询。
//
// # 键空间
//
// 条目键为 "c/" + node#ver，值为 JSON 序列化的 DiscoverInfo。
//
// # 使用示例
//
//	store, err := capstore.Open(capstore.Config{Path: dir})
//	defer store.Close()
//	cache.SetPersistent(store)
//
// # 错误语义
//
// Replay 期间单条损坏数据不会中止扫描，解码错误累积后随扫描
// 结果一并返回；AddEntry 的失败由上层按尽力而为处理。
package capstore
