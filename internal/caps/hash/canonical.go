package hash

import (
	"sort"
	"strings"

	"github.com/dep2p/go-entitycaps/pkg/types"
)

// Canonicalize 把能力数据序列化为确定的规范串
//
// 序列化顺序：
//  1. "client/" + identityType + "//" + identityName + "<"
//     （类别固定为 client，语言槽位在本配置中为空）
//  2. 特性集合去重后按字节序排序，每项后跟 "<"
//  3. 扩展表单存在时：FORM_TYPE 字段的值先输出，
//     其余字段按变量名排序，依次输出 "变量名<" 与排序后的值
//
// 空的 identityType/identityName 产生退化但确定的串，
// 由测试固定其确切形态。
func Canonicalize(identityType, identityName string, features []string, extended *types.DataForm) string {
	var b strings.Builder

	// 身份
	b.WriteString(types.CategoryClient)
	b.WriteString("/")
	b.WriteString(identityType)
	b.WriteString("//")
	b.WriteString(identityName)
	b.WriteString("<")

	// 特性：去重 + 字节序排序
	for _, f := range sortedSet(features) {
		b.WriteString(f)
		b.WriteString("<")
	}

	// 扩展表单
	if extended != nil {
		writeExtended(&b, extended)
	}

	return b.String()
}

// writeExtended 输出扩展表单部分
func writeExtended(b *strings.Builder, form *types.DataForm) {
	var formType *types.FormField
	others := make([]types.FormField, 0, len(form.Fields))

	for i := range form.Fields {
		field := form.Fields[i]
		if field.Var == types.FormTypeVar {
			if formType == nil {
				formType = &field
			}
			continue
		}
		others = append(others, field)
	}

	// 变量名相同的字段保持来源顺序（稳定排序）
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Var < others[j].Var
	})

	// FORM_TYPE 的值最先输出
	if formType != nil {
		writeValues(b, formType.Values)
	}

	for _, field := range others {
		b.WriteString(field.Var)
		b.WriteString("<")
		writeValues(b, field.Values)
	}
}

// writeValues 输出去重排序后的字段值
func writeValues(b *strings.Builder, values []string) {
	for _, v := range sortedSet(values) {
		b.WriteString(v)
		b.WriteString("<")
	}
}

// sortedSet 去重并按字节序排序
func sortedSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
