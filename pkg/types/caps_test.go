package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCapsKey_String 测试缓存键的字符串形式
func TestCapsKey_String(t *testing.T) {
	key := CapsKey{Node: "http://psi-im.org", Version: "q07IKJEyjvHSyhy//CH0CxmKi8w="}

	assert.Equal(t, "http://psi-im.org#q07IKJEyjvHSyhy//CH0CxmKi8w=", key.String())
}

// TestParseCapsKey 测试按最后一个 '#' 解析
func TestParseCapsKey(t *testing.T) {
	// 节点 URI 自身包含 '#'
	key := ParseCapsKey("http://example.org/page#frag#ver=")
	assert.Equal(t, "http://example.org/page#frag", key.Node)
	assert.Equal(t, "ver=", key.Version)

	// 无分隔符
	key = ParseCapsKey("bare-node")
	assert.Equal(t, "bare-node", key.Node)
	assert.Empty(t, key.Version)

	// 往返
	orig := CapsKey{Node: "http://psi-im.org", Version: "abc="}
	assert.Equal(t, orig, ParseCapsKey(orig.String()))
}

// TestDiscoverInfo_StripEnvelope 测试信封字段清除
func TestDiscoverInfo_StripEnvelope(t *testing.T) {
	info := &DiscoverInfo{
		From:     "romeo@montague.lit/orchard",
		To:       "juliet@capulet.lit",
		PacketID: "disco1",
		Features: []string{"f"},
	}

	info.StripEnvelope()

	assert.Empty(t, info.From)
	assert.Empty(t, info.To)
	assert.Empty(t, info.PacketID)
	assert.Equal(t, []string{"f"}, info.Features)
}

// TestDiscoverInfo_Copy 测试深拷贝隔离
func TestDiscoverInfo_Copy(t *testing.T) {
	orig := &DiscoverInfo{
		Identities: []Identity{{Category: "client", Type: "pc", Name: "Psi"}},
		Features:   []string{"f1"},
		Extended: &DataForm{Fields: []FormField{
			{Var: "os", Values: []string{"Linux"}},
		}},
	}

	cp := orig.Copy()
	cp.Identities[0].Name = "changed"
	cp.Features[0] = "changed"
	cp.Extended.Fields[0].Values[0] = "changed"

	assert.Equal(t, "Psi", orig.Identities[0].Name)
	assert.Equal(t, "f1", orig.Features[0])
	assert.Equal(t, "Linux", orig.Extended.Fields[0].Values[0])

	var nilInfo *DiscoverInfo
	assert.Nil(t, nilInfo.Copy())
}

// TestDiscoverInfo_Features 测试特性增查
func TestDiscoverInfo_Features(t *testing.T) {
	info := &DiscoverInfo{}

	assert.False(t, info.HasFeature(NamespaceCaps))
	info.AddFeature(NamespaceCaps)
	assert.True(t, info.HasFeature(NamespaceCaps))
}

// TestDiscoverInfo_ClientIdentity 测试 client 身份提取
func TestDiscoverInfo_ClientIdentity(t *testing.T) {
	info := &DiscoverInfo{Identities: []Identity{
		{Category: "gateway", Type: "msn", Name: "Gateway"},
		{Category: "client", Type: "pc", Name: "Psi"},
	}}

	id := info.ClientIdentity()
	assert.Equal(t, "pc", id.Type)

	// 没有 client 身份时返回零值
	empty := &DiscoverInfo{}
	assert.Equal(t, Identity{}, empty.ClientIdentity())
}

// TestDataForm_Lookup 测试字段查找
func TestDataForm_Lookup(t *testing.T) {
	form := &DataForm{Fields: []FormField{
		{Var: FormTypeVar, Values: []string{"urn:example"}},
		{Var: "os", Values: []string{"Linux"}},
	}}

	field, ok := form.Lookup("os")
	require.True(t, ok)
	assert.Equal(t, []string{"Linux"}, field.Values)

	_, ok = form.Lookup("missing")
	assert.False(t, ok)

	var nilForm *DataForm
	_, ok = nilForm.Lookup("os")
	assert.False(t, ok)
}
