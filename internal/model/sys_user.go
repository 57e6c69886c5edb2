package model

// UserRole 系统角色，注册时固定，之后不可变更
type UserRole string

const (
	RoleAdmin  UserRole = "Admin"  // 管理员：可见可改全部数据
	RoleSales  UserRole = "Sales"  // 销售：只能看/改自己名下的数据
	RoleViewer UserRole = "Viewer" // 只读：可见（除 Campaign 外），不可改
)

// SysUser 系统用户
// 注册后除追加新用户外不可变更，角色在创建时一次性确定
type SysUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"` // 登录标识
	Password string   `json:"password"` // bcrypt 哈希
	Role     UserRole `json:"role"`
}

// Caller 操作发起者（角色 + 用户ID），所有权限判断的输入
type Caller struct {
	ID   string
	Role UserRole
}
