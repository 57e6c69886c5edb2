package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/internal/store"
)

// AuthService 注册 / 登录 / 登出
// 用户目录与登录态都落在 store 里；登出等价于整库重置
type AuthService struct {
	store *store.Store
}

// NewAuthService 创建认证服务
func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

// CurrentUser 当前登录用户，未登录返回 nil
func (s *AuthService) CurrentUser() *model.SysUser { return s.store.Session }

// CurrentCaller 当前登录用户对应的操作者身份
func (s *AuthService) CurrentCaller() (model.Caller, bool) {
	if s.store.Session == nil {
		return model.Caller{}, false
	}
	return model.Caller{ID: s.store.Session.ID, Role: s.store.Session.Role}, true
}

// Register 注册新用户：邮箱唯一、密码至少 6 位，角色注册时一次性确定
func (s *AuthService) Register(ctx context.Context, username, email, password string, role model.UserRole) (model.SysUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.SysUser{}, errs.NewAuth("auth_page.email_required")
	}
	if password == "" {
		return model.SysUser{}, errs.NewAuth("auth_page.password_required")
	}
	if len(password) < 6 {
		return model.SysUser{}, errs.NewAuth("auth_page.password_length")
	}
	for i := range s.store.Users {
		if strings.EqualFold(s.store.Users[i].Email, email) {
			return model.SysUser{}, errs.NewAuth("auth_page.email_already_registered")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.SysUser{}, fmt.Errorf("哈希密码失败: %w", err)
	}
	user := model.SysUser{
		ID:       fmt.Sprintf("user-%d", time.Now().UnixMilli()),
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	s.store.Users = append(s.store.Users, user)
	s.store.SaveUsers(ctx)
	return user, nil
}

// Login 邮箱 + 密码登录，成功后会话持久化
func (s *AuthService) Login(ctx context.Context, email, password string) (model.SysUser, error) {
	email = strings.TrimSpace(email)
	for i := range s.store.Users {
		u := s.store.Users[i]
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			break
		}
		s.store.Session = &u
		s.store.SaveSession(ctx)
		return u, nil
	}
	return model.SysUser{}, errs.NewAuth("auth_page.invalid_credentials")
}

// Logout 登出：清会话并把全部业务数据重置回种子状态
func (s *AuthService) Logout(ctx context.Context) {
	s.store.Reset(ctx)
}
