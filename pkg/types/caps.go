package types

import "strings"

// 协议常量
const (
	// NamespaceCaps 实体能力（Entity Capabilities）特性命名空间
	//
	// 节点在服务发现层宣告此特性，表示自己会随出席通知
	// 携带版本化的能力摘要。
	NamespaceCaps = "http://jabber.org/protocol/caps"

	// CategoryClient 身份类别（本配置固定为 client）
	CategoryClient = "client"

	// FormTypeVar 扩展表单中的保留字段名
	FormTypeVar = "FORM_TYPE"

	// DefaultHashMethod 默认摘要算法（XEP-0115 配置默认值）
	DefaultHashMethod = "sha-1"
)

// Identity 实体身份
//
// 描述实体在服务发现中的类别、类型与名称。
// Lang 为语言标签槽位，本配置中保持为空。
type Identity struct {
	// Category 身份类别（本配置固定为 "client"）
	Category string `json:"category"`

	// Type 身份类型，例如 "pc"、"bot"
	Type string `json:"type"`

	// Name 软件名称
	Name string `json:"name"`

	// Lang 语言标签（保留，本配置为空）
	Lang string `json:"lang,omitempty"`
}

// FormField 扩展表单字段
type FormField struct {
	// Var 字段变量名
	Var string `json:"var"`

	// Values 字段值列表（保持原始顺序）
	Values []string `json:"values"`
}

// DataForm 扩展表单数据
//
// 字段顺序保持来源顺序；规范化时由哈希层负责排序。
type DataForm struct {
	// Fields 字段列表
	Fields []FormField `json:"fields"`
}

// Lookup 按变量名查找字段
func (f *DataForm) Lookup(varName string) (FormField, bool) {
	if f == nil {
		return FormField{}, false
	}
	for _, field := range f.Fields {
		if field.Var == varName {
			return field, true
		}
	}
	return FormField{}, false
}

// Copy 返回表单的深拷贝
func (f *DataForm) Copy() *DataForm {
	if f == nil {
		return nil
	}
	out := &DataForm{Fields: make([]FormField, len(f.Fields))}
	for i, field := range f.Fields {
		values := make([]string, len(field.Values))
		copy(values, field.Values)
		out.Fields[i] = FormField{Var: field.Var, Values: values}
	}
	return out
}

// DiscoverInfo 服务发现描述符
//
// 记录一个实体宣告的身份与特性集合，可选携带扩展表单。
// 进入缓存前必须调用 StripEnvelope 清除传输信封字段，
// 信封字段不属于能力身份。
type DiscoverInfo struct {
	// Node 描述符对应的节点（node#ver 形式或空）
	Node string `json:"node,omitempty"`

	// From 信封字段：发送方（缓存前清除）
	From string `json:"from,omitempty"`

	// To 信封字段：接收方（缓存前清除）
	To string `json:"to,omitempty"`

	// PacketID 信封字段：报文 ID（缓存前清除）
	PacketID string `json:"packet_id,omitempty"`

	// Identities 身份列表
	Identities []Identity `json:"identities"`

	// Features 特性标识符列表
	Features []string `json:"features"`

	// Extended 扩展表单数据（可选）
	Extended *DataForm `json:"extended,omitempty"`
}

// AddFeature 添加特性（允许重复，规范化时去重）
func (d *DiscoverInfo) AddFeature(feature string) {
	d.Features = append(d.Features, feature)
}

// HasFeature 检查是否包含指定特性
func (d *DiscoverInfo) HasFeature(feature string) bool {
	for _, f := range d.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// StripEnvelope 清除传输信封字段
//
// 信封地址（From/To/PacketID）随会话变化，不参与能力身份。
func (d *DiscoverInfo) StripEnvelope() {
	d.From = ""
	d.To = ""
	d.PacketID = ""
}

// Copy 返回描述符的深拷贝
func (d *DiscoverInfo) Copy() *DiscoverInfo {
	if d == nil {
		return nil
	}
	out := &DiscoverInfo{
		Node:     d.Node,
		From:     d.From,
		To:       d.To,
		PacketID: d.PacketID,
		Extended: d.Extended.Copy(),
	}
	if d.Identities != nil {
		out.Identities = make([]Identity, len(d.Identities))
		copy(out.Identities, d.Identities)
	}
	if d.Features != nil {
		out.Features = make([]string, len(d.Features))
		copy(out.Features, d.Features)
	}
	return out
}

// ClientIdentity 返回第一个 client 类别的身份
//
// 找不到时返回零值身份，规范化层会生成退化但确定的串。
func (d *DiscoverInfo) ClientIdentity() Identity {
	for _, id := range d.Identities {
		if id.Category == CategoryClient {
			return id
		}
	}
	return Identity{}
}

// CapsKey 能力缓存键
//
// 由基础节点 URI 与版本哈希组成，规范字符串形式为 "node#ver"。
type CapsKey struct {
	// Node 基础节点 URI（标识客户端软件）
	Node string `json:"node"`

	// Version 版本哈希（Base64 编码的摘要）
	Version string `json:"version"`
}

// String 返回 "node#ver" 形式的缓存键
func (k CapsKey) String() string {
	return k.Node + "#" + k.Version
}

// ParseCapsKey 解析 "node#ver" 字符串
//
// 以最后一个 '#' 为分隔（节点 URI 自身可能包含 '#'）。
// 没有分隔符时整个串作为 Node，Version 为空。
func ParseCapsKey(s string) CapsKey {
	idx := strings.LastIndex(s, "#")
	if idx < 0 {
		return CapsKey{Node: s}
	}
	return CapsKey{Node: s[:idx], Version: s[idx+1:]}
}
