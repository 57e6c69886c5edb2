package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/internal/store"
	"crm_dev_v1_202601/pkg/storage"
)

func setupAuth(t *testing.T) (*AuthService, *store.Store, storage.BlobStore) {
	t.Helper()
	ctx := context.Background()
	blob := storage.NewMemoryStore()
	st := store.Open(ctx, blob)
	return NewAuthService(st), st, blob
}

func authKey(t *testing.T, err error) string {
	t.Helper()
	var ae *errs.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	return ae.Key
}

// ==================== 注册 ====================

func TestRegister_CreatesUser(t *testing.T) {
	auth, st, _ := setupAuth(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "New Rep", "new@example.com", "secret1", model.RoleSales)
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
	if !strings.HasPrefix(user.ID, "user-") {
		t.Errorf("用户 ID = %q, 应以 user- 开头", user.ID)
	}
	if user.Password == "secret1" {
		t.Error("密码不应明文存储")
	}
	if len(st.Users) != 5 {
		t.Errorf("用户数 = %d, want 5", len(st.Users))
	}

	// 注册后可直接登录
	if _, err := auth.Login(ctx, "new@example.com", "secret1"); err != nil {
		t.Errorf("新用户登录失败: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		wantKey  string
	}{
		{"空邮箱", "", "secret1", "auth_page.email_required"},
		{"空密码", "x@example.com", "", "auth_page.password_required"},
		{"密码过短", "x@example.com", "12345", "auth_page.password_length"},
		{"邮箱已注册", "admin@example.com", "secret1", "auth_page.email_already_registered"},
		{"邮箱大小写不敏感", "ADMIN@example.com", "secret1", "auth_page.email_already_registered"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := auth.Register(ctx, "X", c.email, c.password, model.RoleSales)
			if got := authKey(t, err); got != c.wantKey {
				t.Errorf("key = %s, want %s", got, c.wantKey)
			}
		})
	}
}

// ==================== 登录 / 登出 ====================

func TestLogin_SetsAndPersistsSession(t *testing.T) {
	auth, st, blob := setupAuth(t)
	ctx := context.Background()

	user, err := auth.Login(ctx, "sales1@example.com", store.SeedPassword)
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if user.Role != model.RoleSales {
		t.Errorf("角色 = %s, want Sales", user.Role)
	}
	if st.Session == nil || st.Session.ID != "user-sales1" {
		t.Errorf("会话 = %v", st.Session)
	}

	caller, ok := auth.CurrentCaller()
	if !ok || caller.ID != "user-sales1" || caller.Role != model.RoleSales {
		t.Errorf("CurrentCaller = %v, %v", caller, ok)
	}

	// 重开同一个 blob，会话应恢复
	st2 := store.Open(ctx, blob)
	if st2.Session == nil || st2.Session.ID != "user-sales1" {
		t.Error("会话未持久化")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth, _, _ := setupAuth(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "sales1@example.com", "wrong-password")
	if got := authKey(t, err); got != "auth_page.invalid_credentials" {
		t.Errorf("key = %s", got)
	}
	_, err = auth.Login(ctx, "nobody@example.com", store.SeedPassword)
	if got := authKey(t, err); got != "auth_page.invalid_credentials" {
		t.Errorf("key = %s", got)
	}
}

func TestLogout_ResetsEverything(t *testing.T) {
	auth, st, _ := setupAuth(t)
	ctx := context.Background()

	if _, err := auth.Login(ctx, "admin@example.com", store.SeedPassword); err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	st.Customers = append(st.Customers, model.Customer{ID: "cust-extra"})
	st.SaveCustomers(ctx)

	auth.Logout(ctx)

	if _, ok := auth.CurrentCaller(); ok {
		t.Error("登出后仍有会话")
	}
	if len(st.Customers) != 5 {
		t.Errorf("登出后客户 = %d 条, want 种子的 5 条", len(st.Customers))
	}
}
