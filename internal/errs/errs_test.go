package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessageKey_CoversAllTypes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"权限", NewPermission(), "common.permission_denied"},
		{"未找到", NewNotFound("customer", "cust-1"), "common.not_found"},
		{"格式", NewFormat("bad payload"), "common.import_failed"},
		{"生成", NewGeneration("upstream down"), "common.generation_failed"},
		{"认证", NewAuth("auth_page.invalid_credentials"), "auth_page.invalid_credentials"},
		{"未知错误", errors.New("boom"), "common.unknown_error"},
		{"包装后仍可解析", fmt.Errorf("上下文: %w", NewAuth("auth_page.email_required")), "auth_page.email_required"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MessageKey(c.err); got != c.want {
				t.Errorf("MessageKey = %s, want %s", got, c.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsAuth(NewAuth("auth_page.password_length")) {
		t.Error("IsAuth 应命中")
	}
	if IsAuth(NewPermission()) {
		t.Error("IsAuth 误命中权限错误")
	}
	if !IsPermission(NewPermission()) || !IsNotFound(NewNotFound("deal", "x")) ||
		!IsFormat(NewFormat("r")) || !IsGeneration(NewGeneration("m")) {
		t.Error("判别辅助未命中对应类型")
	}
}
