package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// CrmBlob KV 表的一行：一个集合一行，整体读整体写
type CrmBlob struct {
	BlobKey   string         `gorm:"primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

// TableName 表名
func (CrmBlob) TableName() string { return "crm_blobs" }

// GormStore 数据库 KV 存储，sqlite 或 postgres 由 DSN 决定
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 建连 + 自动建表
// DSN 含 host= 或 postgres:// 走 postgres，否则按 sqlite 文件路径处理
func NewGormStore(dsn string) (*GormStore, error) {
	if dsn == "" {
		dsn = "crm.db"
	}

	dbLogger := logger.Default.LogMode(logger.Silent)

	var db *gorm.DB
	var err error
	if strings.Contains(dsn, "host=") || strings.HasPrefix(dsn, "postgres://") {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
		if err == nil {
			// 连接池参数只对真正的服务端数据库有意义
			if sqlDB, poolErr := db.DB(); poolErr == nil {
				sqlDB.SetMaxIdleConns(10)
				sqlDB.SetMaxOpenConns(100)
				sqlDB.SetConnMaxLifetime(time.Hour)
			}
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	}
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	if err := db.AutoMigrate(&CrmBlob{}); err != nil {
		return nil, fmt.Errorf("自动建表出错: %w", err)
	}

	log.Println("[Storage] 数据库存储就绪")
	return &GormStore{db: db}, nil
}

// Load 读取
func (g *GormStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var row CrmBlob
	err := g.db.WithContext(ctx).First(&row, "blob_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	return []byte(row.Value), true, nil
}

// Save 写入（upsert）
func (g *GormStore) Save(ctx context.Context, key string, value []byte) error {
	row := CrmBlob{BlobKey: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blob_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}
	return nil
}

// Delete 删除
func (g *GormStore) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&CrmBlob{}, "blob_key = ?", key).Error
}
