// Package store 实体存储：内存集合 + 持久化镜像
// 所有变更都先同步改内存，再显式调用对应的 Save* 把集合整体镜像到
// 持久化适配层；镜像是尽力而为，失败只记日志，不污染内存状态
package store

import (
	"context"
	"encoding/json"
	"log"

	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/pkg/storage"
)

// 持久化 key，沿用历史数据的命名
const (
	KeyCustomers      = "crmCustomers"
	KeyDeals          = "crmDeals"
	KeyActivities     = "crmActivities"
	KeySuppliers      = "crmSuppliers"
	KeyCampaigns      = "crmCampaigns"
	KeyProducts       = "crmProducts"
	KeyUsers          = "crmUsers"
	KeyCommissionRate = "commissionRate"
	KeyLoggedInUser   = "loggedInUser"
	KeyLoggedInRole   = "loggedInUserRole"
)

// dataKeys 登出时需要清除的 key（语言/自定义标签不在其列，跨会话保留）
var dataKeys = []string{
	KeyCustomers, KeyDeals, KeyActivities, KeySuppliers, KeyCampaigns,
	KeyProducts, KeyUsers, KeyCommissionRate, KeyLoggedInUser, KeyLoggedInRole,
}

// Store 实体存储
type Store struct {
	blob storage.BlobStore

	Customers      []model.Customer
	Deals          []model.Deal
	Activities     []model.Activity
	Suppliers      []model.Supplier
	Campaigns      []model.Campaign
	Products       []model.Product
	Users          []model.SysUser
	CommissionRate float64
	Session        *model.SysUser // 当前登录用户，nil 表示未登录
}

// Open 从持久化适配层加载全部集合
// 任何 key 缺失或损坏都回落到种子数据，不报错
func Open(ctx context.Context, blob storage.BlobStore) *Store {
	s := &Store{blob: blob}
	s.Customers = loadJSON(ctx, blob, KeyCustomers, SeedCustomers())
	s.Deals = loadJSON(ctx, blob, KeyDeals, SeedDeals())
	s.Activities = loadJSON(ctx, blob, KeyActivities, SeedActivities())
	s.Suppliers = loadJSON(ctx, blob, KeySuppliers, SeedSuppliers())
	s.Campaigns = loadJSON(ctx, blob, KeyCampaigns, SeedCampaigns())
	s.Products = loadJSON(ctx, blob, KeyProducts, SeedProducts())
	s.Users = loadJSON(ctx, blob, KeyUsers, SeedUsers())
	s.CommissionRate = loadJSON(ctx, blob, KeyCommissionRate, model.DefaultCommissionRate)

	var noUser *model.SysUser
	s.Session = loadJSON(ctx, blob, KeyLoggedInUser, noUser)
	return s
}

// loadJSON 读一个 key 并反序列化；缺失/损坏一律回落默认值
func loadJSON[T any](ctx context.Context, blob storage.BlobStore, key string, fallback T) T {
	data, ok, err := blob.Load(ctx, key)
	if err != nil {
		log.Printf("[Store] 读取 %s 失败，使用默认值: %v", key, err)
		return fallback
	}
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("[Store] 解析 %s 失败，使用默认值: %v", key, err)
		return fallback
	}
	return v
}

// save 镜像一个 key，失败只记日志
func (s *Store) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Store] 序列化 %s 失败: %v", key, err)
		return
	}
	if err := s.blob.Save(ctx, key, data); err != nil {
		log.Printf("[Store] 镜像 %s 失败: %v", key, err)
	}
}

// ==================== 逐集合镜像 ====================

// SaveCustomers 镜像客户集合
func (s *Store) SaveCustomers(ctx context.Context) { s.save(ctx, KeyCustomers, s.Customers) }

// SaveDeals 镜像商机集合
func (s *Store) SaveDeals(ctx context.Context) { s.save(ctx, KeyDeals, s.Deals) }

// SaveActivities 镜像活动集合
func (s *Store) SaveActivities(ctx context.Context) { s.save(ctx, KeyActivities, s.Activities) }

// SaveSuppliers 镜像供应商集合
func (s *Store) SaveSuppliers(ctx context.Context) { s.save(ctx, KeySuppliers, s.Suppliers) }

// SaveCampaigns 镜像营销活动集合
func (s *Store) SaveCampaigns(ctx context.Context) { s.save(ctx, KeyCampaigns, s.Campaigns) }

// SaveProducts 镜像产品集合
func (s *Store) SaveProducts(ctx context.Context) { s.save(ctx, KeyProducts, s.Products) }

// SaveUsers 镜像用户目录
func (s *Store) SaveUsers(ctx context.Context) { s.save(ctx, KeyUsers, s.Users) }

// SaveCommissionRate 镜像佣金率
func (s *Store) SaveCommissionRate(ctx context.Context) {
	s.save(ctx, KeyCommissionRate, s.CommissionRate)
}

// SaveSession 镜像登录态；未登录时清除对应 key
func (s *Store) SaveSession(ctx context.Context) {
	if s.Session == nil {
		if err := s.blob.Delete(ctx, KeyLoggedInUser); err != nil {
			log.Printf("[Store] 清除登录态失败: %v", err)
		}
		if err := s.blob.Delete(ctx, KeyLoggedInRole); err != nil {
			log.Printf("[Store] 清除登录角色失败: %v", err)
		}
		return
	}
	s.save(ctx, KeyLoggedInUser, s.Session)
	s.save(ctx, KeyLoggedInRole, s.Session.Role)
}

// Reset 登出语义：集合恢复种子数据、佣金率恢复默认、清会话、删全部数据 key
// 语言与自定义标签由 i18n 层管理，不在清除范围内
func (s *Store) Reset(ctx context.Context) {
	s.Customers = SeedCustomers()
	s.Deals = SeedDeals()
	s.Activities = SeedActivities()
	s.Suppliers = SeedSuppliers()
	s.Campaigns = SeedCampaigns()
	s.Products = SeedProducts()
	s.Users = SeedUsers()
	s.CommissionRate = model.DefaultCommissionRate
	s.Session = nil

	for _, key := range dataKeys {
		if err := s.blob.Delete(ctx, key); err != nil {
			log.Printf("[Store] 清除 %s 失败: %v", key, err)
		}
	}
}
