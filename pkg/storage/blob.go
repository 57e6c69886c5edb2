// Package storage 持久化适配层：按 key 读写 JSON blob
// 每个集合一个 key，整体读、整体写；
// 读不到或读坏了由上层用默认值兜底，这里不把损坏当错误抛给业务
package storage

import (
	"context"
	"fmt"
)

// BlobStore 按名取值的 blob 存储
type BlobStore interface {
	// Load 读取 key 对应的 blob；ok=false 表示不存在（不是错误）
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Save 整体写入 key 对应的 blob
	Save(ctx context.Context, key string, value []byte) error

	// Delete 删除 key；key 不存在时静默成功
	Delete(ctx context.Context, key string) error
}

// Config 存储配置
type Config struct {
	Provider string // "memory" | "local" | "db" | "s3"

	// local
	BaseDir string

	// db（sqlite 文件路径，或 host=... / postgres:// 形式的 PG DSN）
	DSN string

	// s3
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	BasePath  string // 对象 key 前缀
}

// NewBlobStore 工厂方法
func NewBlobStore(cfg *Config) (BlobStore, error) {
	switch cfg.Provider {
	case "memory":
		return NewMemoryStore(), nil
	case "local":
		return NewLocalStore(cfg.BaseDir)
	case "db":
		return NewGormStore(cfg.DSN)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}
