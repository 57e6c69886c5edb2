// Package permission 权限评估器
// 三个纯函数回答三件事：谁能看全部、谁能改这条、谁能新建。
// 无状态、无副作用，各处不得再散落 role == xxx 的临时判断
package permission

import "crm_dev_v1_202601/internal/model"

// CanViewAll 只有 Admin 能看到全部记录，其余角色只能看自己名下的
func CanViewAll(role model.UserRole) bool {
	return role == model.RoleAdmin
}

// CanModify 修改/删除权限
// Admin 永远可以；Sales 仅限自己名下（ownerID 为空也不行）；Viewer 永远不行
// 注意：Admin 不是"Sales 的超集"这种层级关系，每条规则都显式列出
func CanModify(role model.UserRole, ownerID, callerID string) bool {
	if role == model.RoleAdmin {
		return true
	}
	if role == model.RoleSales && ownerID != "" && ownerID == callerID {
		return true
	}
	return false
}

// CanCreate 除 Viewer 外都能新建
func CanCreate(role model.UserRole) bool {
	return role != model.RoleViewer
}

// ResolveOwner 新记录归属规则（add 和 import 回填共用的唯一规则）：
// Admin 显式指定了 ownerId 则保留，否则归当前操作者
func ResolveOwner(role model.UserRole, callerID, supplied string) string {
	if role == model.RoleAdmin && supplied != "" {
		return supplied
	}
	return callerID
}
