// Package engine 权限域内的通用 CRUD / 过滤引擎
// 六种实体的增删改查结构完全一致，只有字段名和级联规则不同，
// 这里用一份泛型实现 + 每种实体一个能力描述符，替代按实体复制粘贴
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"crm_dev_v1_202601/internal/model"
)

// Descriptor 实体能力描述符：引擎对实体的全部认知都收敛在这里
type Descriptor[T any] struct {
	Kind     string // 实体种类名，错误信息用
	IDPrefix string // 新 ID 前缀，如 cust / deal

	// Viewer 角色是否完全不可见（目前仅 Campaign 为 true）
	ViewerHidden bool

	ID       func(*T) string
	SetID    func(*T, string)
	Owner    func(*T) string
	SetOwner func(*T, string)
}

// NewID 生成新记录 ID：前缀 + 毫秒时间戳 + 随机后缀
// 对外唯一承诺是全局唯一，格式本身不是契约
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

// ==================== 各实体描述符 ====================

// Customers 客户描述符
var Customers = Descriptor[model.Customer]{
	Kind:     "customer",
	IDPrefix: "cust",
	ID:       func(c *model.Customer) string { return c.ID },
	SetID:    func(c *model.Customer, id string) { c.ID = id },
	Owner:    func(c *model.Customer) string { return c.OwnerID },
	SetOwner: func(c *model.Customer, o string) { c.OwnerID = o },
}

// Suppliers 供应商描述符
var Suppliers = Descriptor[model.Supplier]{
	Kind:     "supplier",
	IDPrefix: "sup",
	ID:       func(s *model.Supplier) string { return s.ID },
	SetID:    func(s *model.Supplier, id string) { s.ID = id },
	Owner:    func(s *model.Supplier) string { return s.OwnerID },
	SetOwner: func(s *model.Supplier, o string) { s.OwnerID = o },
}

// Deals 商机描述符
var Deals = Descriptor[model.Deal]{
	Kind:     "deal",
	IDPrefix: "deal",
	ID:       func(d *model.Deal) string { return d.ID },
	SetID:    func(d *model.Deal, id string) { d.ID = id },
	Owner:    func(d *model.Deal) string { return d.OwnerID },
	SetOwner: func(d *model.Deal, o string) { d.OwnerID = o },
}

// Activities 活动描述符
var Activities = Descriptor[model.Activity]{
	Kind:     "activity",
	IDPrefix: "act",
	ID:       func(a *model.Activity) string { return a.ID },
	SetID:    func(a *model.Activity, id string) { a.ID = id },
	Owner:    func(a *model.Activity) string { return a.OwnerID },
	SetOwner: func(a *model.Activity, o string) { a.OwnerID = o },
}

// Campaigns 营销活动描述符；Viewer 整体不可见
var Campaigns = Descriptor[model.Campaign]{
	Kind:         "campaign",
	IDPrefix:     "camp",
	ViewerHidden: true,
	ID:           func(c *model.Campaign) string { return c.ID },
	SetID:        func(c *model.Campaign, id string) { c.ID = id },
	Owner:        func(c *model.Campaign) string { return c.OwnerID },
	SetOwner:     func(c *model.Campaign, o string) { c.OwnerID = o },
}

// Products 产品描述符
var Products = Descriptor[model.Product]{
	Kind:     "product",
	IDPrefix: "prod",
	ID:       func(p *model.Product) string { return p.ID },
	SetID:    func(p *model.Product, id string) { p.ID = id },
	Owner:    func(p *model.Product) string { return p.OwnerID },
	SetOwner: func(p *model.Product, o string) { p.OwnerID = o },
}
