// Package codec 实体集合的 JSON 导入/导出
package codec

import (
	"encoding/json"
	"fmt"

	"crm_dev_v1_202601/internal/engine"
	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/model"
)

// Export 把集合序列化为保持原顺序的 JSON 数组
// 不做任何过滤：调用方给什么（应是已做过权限过滤的可见集合）就导出什么
func Export[T any](records []T) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化导出数据失败: %w", err)
	}
	return data, nil
}

// Import 解析导入文件并合并进现有集合，返回 existing ++ 调整后的导入记录
//
// 规则：
//   - 载荷必须是同构的实体对象数组，否则返回 FormatError
//   - 每条导入记录一律分配新 ID，文件里的 ID 不采信（避免与现有记录撞 ID）
//   - 非 Admin 导入时，缺失 ownerId 的记录回填为操作者本人；Admin 原样保留
//     （包括没有 ownerId 的情况）
//   - 只改写 id 和（按上述规则的）ownerId；文件里未建模的多余字段挂在
//     记录的 Extra 上原样保留，随导出/持久化一并带出（见 model/extra.go）
//   - 不修改 existing，返回新切片
//
// 导入永远是追加，不做去重：历史实现先重新分配 ID 再按"导入 ID 是否已存在"
// 过滤，该过滤比较的是刚换过的新 ID，必然不命中，等价于无去重。
// 这里保留同样的可观察行为并明示之
func Import[T any](blob []byte, existing []T, caller model.Caller, desc engine.Descriptor[T]) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(blob, &raws); err != nil {
		return nil, errs.NewFormat("payload is not a JSON array")
	}

	imported := make([]T, 0, len(raws))
	for i, raw := range raws {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, errs.NewFormat(fmt.Sprintf("element %d is not an object", i))
		}

		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, errs.NewFormat(fmt.Sprintf("element %d does not match the %s shape: %v", i, desc.Kind, err))
		}

		desc.SetID(&rec, engine.NewID(desc.IDPrefix))
		if caller.Role != model.RoleAdmin && desc.Owner(&rec) == "" {
			desc.SetOwner(&rec, caller.ID)
		}
		imported = append(imported, rec)
	}

	out := make([]T, 0, len(existing)+len(imported))
	out = append(out, existing...)
	out = append(out, imported...)
	return out, nil
}
