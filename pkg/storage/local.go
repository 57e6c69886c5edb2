package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore 本地目录存储，一个 key 一个 <key>.json 文件
type LocalStore struct {
	baseDir string
}

// NewLocalStore 创建本地存储，目录不存在时自动建
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = ".crm-data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (l *LocalStore) path(key string) string {
	return filepath.Join(l.baseDir, key+".json")
}

// Load 读取
func (l *LocalStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(l.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	return data, true, nil
}

// Save 写入
func (l *LocalStore) Save(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(l.path(key), value, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}
	return nil
}

// Delete 删除
func (l *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(l.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除 %s 失败: %w", key, err)
	}
	return nil
}
