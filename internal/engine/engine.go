package engine

import (
	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/internal/permission"
)

// Engine 单一实体种类的 CRUD 引擎
// 所有操作都是同步纯计算：输入记录集，输出新记录集，不修改入参
type Engine[T any] struct {
	desc Descriptor[T]
}

// New 创建引擎
func New[T any](desc Descriptor[T]) *Engine[T] {
	return &Engine[T]{desc: desc}
}

// Kind 实体种类名
func (e *Engine[T]) Kind() string { return e.desc.Kind }

// List 权限过滤后的可见记录
// Admin 看全部；Viewer 对 ViewerHidden 的实体看空；其余只看自己名下的。
// 下游的搜索/排序/展示一律消费这里的输出，调用方永远碰不到自己无权看的记录
func (e *Engine[T]) List(caller model.Caller, all []T) []T {
	if e.desc.ViewerHidden && caller.Role == model.RoleViewer {
		return []T{}
	}
	if permission.CanViewAll(caller.Role) {
		return all
	}
	visible := make([]T, 0, len(all))
	for i := range all {
		if e.desc.Owner(&all[i]) == caller.ID {
			visible = append(visible, all[i])
		}
	}
	return visible
}

// Add 新建记录
// Viewer 直接拒绝；ID 一律重新生成（调用方给的 ID 不采信）；
// 归属按 permission.ResolveOwner 的唯一规则确定
func (e *Engine[T]) Add(caller model.Caller, candidate T, existing []T) ([]T, T, error) {
	var zero T
	if !permission.CanCreate(caller.Role) {
		return nil, zero, errs.NewPermission()
	}

	rec := candidate
	e.desc.SetID(&rec, NewID(e.desc.IDPrefix))
	e.desc.SetOwner(&rec, permission.ResolveOwner(caller.Role, caller.ID, e.desc.Owner(&rec)))

	out := make([]T, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, rec)
	return out, rec, nil
}

// Update 按 ID 原位替换
// 先查存在性再查权限；替换后位置保持不变，其余记录原样；
// 权限通过后更新记录的字段原样采信，不重新推导 ID/归属
func (e *Engine[T]) Update(caller model.Caller, updated T, existing []T) ([]T, error) {
	id := e.desc.ID(&updated)
	idx := e.indexOf(id, existing)
	if idx < 0 {
		return nil, errs.NewNotFound(e.desc.Kind, id)
	}
	if !permission.CanModify(caller.Role, e.desc.Owner(&existing[idx]), caller.ID) {
		return nil, errs.NewPermission()
	}

	out := make([]T, len(existing))
	copy(out, existing)
	out[idx] = updated
	return out, nil
}

// Delete 按 ID 删除，错误判定与 Update 对称
// 级联在 cascade.go 里按实体种类计算，由服务层与本方法的结果一次性落库
func (e *Engine[T]) Delete(caller model.Caller, id string, existing []T) ([]T, error) {
	idx := e.indexOf(id, existing)
	if idx < 0 {
		return nil, errs.NewNotFound(e.desc.Kind, id)
	}
	if !permission.CanModify(caller.Role, e.desc.Owner(&existing[idx]), caller.ID) {
		return nil, errs.NewPermission()
	}

	out := make([]T, 0, len(existing)-1)
	out = append(out, existing[:idx]...)
	out = append(out, existing[idx+1:]...)
	return out, nil
}

// Get 按 ID 查单条（只在可见集合里找）
func (e *Engine[T]) Get(caller model.Caller, id string, all []T) (T, error) {
	var zero T
	visible := e.List(caller, all)
	idx := e.indexOf(id, visible)
	if idx < 0 {
		return zero, errs.NewNotFound(e.desc.Kind, id)
	}
	return visible[idx], nil
}

func (e *Engine[T]) indexOf(id string, records []T) int {
	for i := range records {
		if e.desc.ID(&records[i]) == id {
			return i
		}
	}
	return -1
}
