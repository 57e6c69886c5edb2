package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction 排序方向
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// NewCollator 按界面语言创建字符串排序器
func NewCollator(lang string) *collate.Collator {
	tag := language.English
	if lang == "zh" {
		tag = language.Chinese
	}
	return collate.New(tag)
}

// SortBy 稳定排序
// key 取出排序字段值（派生字段如"客户名"由调用方先解析外键再返回显示值）；
// 字符串按 locale 排序，数值按大小；类型未知或不匹配时比较结果为相等，
// 即相对顺序保持不变——这是既定策略，不是遗漏
func SortBy[T any](records []T, key func(T) any, dir Direction, coll *collate.Collator) []T {
	out := make([]T, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(key(out[i]), key(out[j]), coll)
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareValues(a, b any, coll *collate.Collator) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return coll.CompareString(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int:
		if bv, ok := b.(int); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	// 类型未知/不匹配：视为相等，顺序不动
	return 0
}
