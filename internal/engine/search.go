package engine

import "strings"

// Search 大小写不敏感的子串匹配
// fields 按实体种类给出参与搜索的文本字段（含解析后的外键显示名）；
// 空查询原样返回输入
func Search[T any](query string, records []T, fields func(T) []string) []T {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	matched := make([]T, 0, len(records))
	for _, rec := range records {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), q) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched
}
