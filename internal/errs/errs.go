// Package errs 统一错误分类
// 引擎和编解码层只返回这四类错误，由调用方（CLI/UI）负责展示；
// 错误里带的是 i18n key，不是展示文案
package errs

import (
	"errors"
	"fmt"
)

// PermissionError 权限不足：角色或归属不满足本次操作要求
type PermissionError struct {
	Key string // i18n key，如 common.permission_denied
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied (%s)", e.Key)
}

// NewPermission 创建权限错误
func NewPermission() *PermissionError {
	return &PermissionError{Key: "common.permission_denied"}
}

// NotFoundError 目标记录不存在
type NotFoundError struct {
	Kind string
	ID   string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found (%s)", e.Kind, e.ID, e.Key)
}

// NewNotFound 创建未找到错误
func NewNotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id, Key: "common.not_found"}
}

// FormatError 导入数据格式错误：不是合法的同构实体数组
type FormatError struct {
	Reason string
	Key    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad import payload: %s (%s)", e.Reason, e.Key)
}

// NewFormat 创建格式错误
func NewFormat(reason string) *FormatError {
	return &FormatError{Reason: reason, Key: "common.import_failed"}
}

// GenerationError AI 生成失败，Message 为上游原样透传的可读信息
type GenerationError struct {
	Message string
	Key     string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %s (%s)", e.Message, e.Key)
}

// NewGeneration 创建生成错误
func NewGeneration(message string) *GenerationError {
	return &GenerationError{Message: message, Key: "common.generation_failed"}
}

// AuthError 注册/登录校验失败，Key 指明具体原因
type AuthError struct {
	Key string // i18n key，如 auth_page.invalid_credentials
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%s)", e.Key)
}

// NewAuth 创建认证错误
func NewAuth(key string) *AuthError {
	return &AuthError{Key: key}
}

// ==================== 判别辅助 ====================

// IsPermission 是否为权限错误
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsNotFound 是否为未找到错误
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsFormat 是否为格式错误
func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsGeneration 是否为生成错误
func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsAuth 是否为认证错误
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// MessageKey 取错误对应的 i18n key，未知错误归为 common.unknown_error
func MessageKey(err error) string {
	var pe *PermissionError
	if errors.As(err, &pe) {
		return pe.Key
	}
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return ne.Key
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Key
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Key
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Key
	}
	return "common.unknown_error"
}
