package storage

import (
	"context"
	"sync"
)

// MemoryStore 进程内存储，测试和演示用
// 用 sync.Map 保证并发安全
type MemoryStore struct {
	data sync.Map
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load 读取
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := m.data.Load(key)
	if !ok {
		return nil, false, nil
	}
	return val.([]byte), true, nil
}

// Save 写入（保存副本，避免调用方后续修改切片影响已存数据）
func (m *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data.Store(key, cp)
	return nil
}

// Delete 删除
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}
