// Package hash 实现能力描述符的规范化与版本哈希
//
// 规范化把身份、特性集合与扩展表单按固定顺序序列化为确定的
// 字节串；哈希对该串做摘要并以 Base64 编码，得到能力版本令牌。
// 序列化顺序一旦偏离就会破坏与其他实现的互操作，算法细节
// 以 XEP-0115 的生成规则为准。
//
// # 快速开始
//
//	s := hash.Canonicalize("pc", "Example 1.0", features, nil)
//	ver, err := hash.Hash(types.DefaultHashMethod, s)
//
// # 确定性
//
// 特性集合与表单字段在序列化前都会去重并按字节序排序，
// 输入顺序的任何置换都不会改变输出。
//
// # 并发安全
//
// 包内全部为纯函数，无共享状态。调用方在传入可能被并发修改的
// 表单时需要自行快照（Manager 对扩展表单做深拷贝后再调用）。
package hash
