package service

import (
	"context"

	"crm_dev_v1_202601/internal/codec"
	"crm_dev_v1_202601/internal/engine"
	"crm_dev_v1_202601/internal/errs"
	"crm_dev_v1_202601/internal/i18n"
	"crm_dev_v1_202601/internal/model"
	"crm_dev_v1_202601/internal/store"
)

// CRMService 应用控制器：每种实体的 CRUD / 搜索 / 排序 / 导入导出入口
// 统一流程：权限校验（引擎内）-> 改内存集合 -> 镜像到持久化层。
// 级联删除在赋值回 store 之前整体算完，外界看不到半级联状态
type CRMService struct {
	store *store.Store
	tr    *i18n.Translator

	customers  *engine.Engine[model.Customer]
	suppliers  *engine.Engine[model.Supplier]
	deals      *engine.Engine[model.Deal]
	activities *engine.Engine[model.Activity]
	campaigns  *engine.Engine[model.Campaign]
	products   *engine.Engine[model.Product]
}

// NewCRMService 创建服务
func NewCRMService(st *store.Store, tr *i18n.Translator) *CRMService {
	return &CRMService{
		store:      st,
		tr:         tr,
		customers:  engine.New(engine.Customers),
		suppliers:  engine.New(engine.Suppliers),
		deals:      engine.New(engine.Deals),
		activities: engine.New(engine.Activities),
		campaigns:  engine.New(engine.Campaigns),
		products:   engine.New(engine.Products),
	}
}

// Store 暴露底层存储（统计服务与 CLI 读取用）
func (s *CRMService) Store() *store.Store { return s.store }

// ==================== 外键显示名解析 ====================

// CustomerName 客户 ID -> 显示名，找不到返回空串
func (s *CRMService) CustomerName(id string) string {
	for i := range s.store.Customers {
		if s.store.Customers[i].ID == id {
			return s.store.Customers[i].Name
		}
	}
	return ""
}

// DealName 商机 ID -> 显示名
func (s *CRMService) DealName(id string) string {
	for i := range s.store.Deals {
		if s.store.Deals[i].ID == id {
			return s.store.Deals[i].Name
		}
	}
	return ""
}

// SupplierName 供应商 ID -> 显示名
func (s *CRMService) SupplierName(id string) string {
	for i := range s.store.Suppliers {
		if s.store.Suppliers[i].ID == id {
			return s.store.Suppliers[i].Name
		}
	}
	return ""
}

// ==================== Customer ====================

// ListCustomers 可见客户
func (s *CRMService) ListCustomers(caller model.Caller) []model.Customer {
	return s.customers.List(caller, s.store.Customers)
}

// GetCustomer 在可见集合里按 ID 查单个客户
func (s *CRMService) GetCustomer(caller model.Caller, id string) (model.Customer, error) {
	return s.customers.Get(caller, id, s.store.Customers)
}

// SearchCustomers 在可见集合里按 名称/公司/邮箱 搜索
func (s *CRMService) SearchCustomers(caller model.Caller, query string) []model.Customer {
	return engine.Search(query, s.ListCustomers(caller), func(c model.Customer) []string {
		return []string{c.Name, c.Company, c.Email}
	})
}

// SortCustomers 按字段稳定排序
func (s *CRMService) SortCustomers(records []model.Customer, key string, dir engine.Direction) []model.Customer {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(c model.Customer) any {
		switch key {
		case "name":
			return c.Name
		case "company":
			return c.Company
		case "email":
			return c.Email
		case "phone":
			return c.Phone
		case "status":
			return string(c.Status)
		}
		return nil
	}, dir, coll)
}

// AddCustomer 新建客户
func (s *CRMService) AddCustomer(ctx context.Context, caller model.Caller, c model.Customer) (model.Customer, error) {
	newList, created, err := s.customers.Add(caller, c, s.store.Customers)
	if err != nil {
		return model.Customer{}, err
	}
	s.store.Customers = newList
	s.store.SaveCustomers(ctx)
	return created, nil
}

// UpdateCustomer 更新客户
func (s *CRMService) UpdateCustomer(ctx context.Context, caller model.Caller, c model.Customer) error {
	newList, err := s.customers.Update(caller, c, s.store.Customers)
	if err != nil {
		return err
	}
	s.store.Customers = newList
	s.store.SaveCustomers(ctx)
	return nil
}

// DeleteCustomer 删除客户并级联：其商机、其活动、各营销活动的关联摘除
// 四个集合先全部算出新状态再一次性落库
func (s *CRMService) DeleteCustomer(ctx context.Context, caller model.Caller, id string) error {
	newCustomers, err := s.customers.Delete(caller, id, s.store.Customers)
	if err != nil {
		return err
	}
	cascade := engine.CustomerDeleteCascade(id, s.store.Deals, s.store.Activities, s.store.Campaigns)

	s.store.Customers = newCustomers
	s.store.Deals = cascade.Deals
	s.store.Activities = cascade.Activities
	s.store.Campaigns = cascade.Campaigns

	s.store.SaveCustomers(ctx)
	s.store.SaveDeals(ctx)
	s.store.SaveActivities(ctx)
	s.store.SaveCampaigns(ctx)
	return nil
}

// ExportCustomers 导出调用方可见的客户集合
func (s *CRMService) ExportCustomers(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListCustomers(caller))
}

// ImportCustomers 导入客户（永远追加，ID 重新生成，归属按规则回填）
func (s *CRMService) ImportCustomers(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Customers, caller, engine.Customers)
	if err != nil {
		return err
	}
	s.store.Customers = merged
	s.store.SaveCustomers(ctx)
	return nil
}

// ==================== Supplier ====================

// ListSuppliers 可见供应商
func (s *CRMService) ListSuppliers(caller model.Caller) []model.Supplier {
	return s.suppliers.List(caller, s.store.Suppliers)
}

// SearchSuppliers 按 名称/联系人/公司/邮箱 搜索
func (s *CRMService) SearchSuppliers(caller model.Caller, query string) []model.Supplier {
	return engine.Search(query, s.ListSuppliers(caller), func(sp model.Supplier) []string {
		return []string{sp.Name, sp.ContactPerson, sp.Company, sp.Email}
	})
}

// SortSuppliers 按字段稳定排序
func (s *CRMService) SortSuppliers(records []model.Supplier, key string, dir engine.Direction) []model.Supplier {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(sp model.Supplier) any {
		switch key {
		case "name":
			return sp.Name
		case "contactPerson":
			return sp.ContactPerson
		case "company":
			return sp.Company
		case "email":
			return sp.Email
		case "status":
			return string(sp.Status)
		}
		return nil
	}, dir, coll)
}

// AddSupplier 新建供应商
func (s *CRMService) AddSupplier(ctx context.Context, caller model.Caller, sp model.Supplier) (model.Supplier, error) {
	newList, created, err := s.suppliers.Add(caller, sp, s.store.Suppliers)
	if err != nil {
		return model.Supplier{}, err
	}
	s.store.Suppliers = newList
	s.store.SaveSuppliers(ctx)
	return created, nil
}

// UpdateSupplier 更新供应商
func (s *CRMService) UpdateSupplier(ctx context.Context, caller model.Caller, sp model.Supplier) error {
	newList, err := s.suppliers.Update(caller, sp, s.store.Suppliers)
	if err != nil {
		return err
	}
	s.store.Suppliers = newList
	s.store.SaveSuppliers(ctx)
	return nil
}

// DeleteSupplier 删除供应商并级联清理其活动
func (s *CRMService) DeleteSupplier(ctx context.Context, caller model.Caller, id string) error {
	newList, err := s.suppliers.Delete(caller, id, s.store.Suppliers)
	if err != nil {
		return err
	}
	newActivities := engine.SupplierDeleteCascade(id, s.store.Activities)

	s.store.Suppliers = newList
	s.store.Activities = newActivities

	s.store.SaveSuppliers(ctx)
	s.store.SaveActivities(ctx)
	return nil
}

// ExportSuppliers 导出可见供应商
func (s *CRMService) ExportSuppliers(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListSuppliers(caller))
}

// ImportSuppliers 导入供应商
func (s *CRMService) ImportSuppliers(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Suppliers, caller, engine.Suppliers)
	if err != nil {
		return err
	}
	s.store.Suppliers = merged
	s.store.SaveSuppliers(ctx)
	return nil
}

// ==================== Deal ====================

// ListDeals 可见商机
func (s *CRMService) ListDeals(caller model.Caller) []model.Deal {
	return s.deals.List(caller, s.store.Deals)
}

// SearchDeals 按 名称/客户名/阶段 搜索（客户名先按外键解析）
func (s *CRMService) SearchDeals(caller model.Caller, query string) []model.Deal {
	return engine.Search(query, s.ListDeals(caller), func(d model.Deal) []string {
		return []string{d.Name, s.CustomerName(d.CustomerID), string(d.Stage)}
	})
}

// SortDeals 按字段稳定排序；customer 为派生键（解析为客户显示名再比较）
func (s *CRMService) SortDeals(records []model.Deal, key string, dir engine.Direction) []model.Deal {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(d model.Deal) any {
		switch key {
		case "name":
			return d.Name
		case "value":
			return d.Value
		case "stage":
			return string(d.Stage)
		case "closeDate":
			return d.CloseDate
		case "customer":
			return s.CustomerName(d.CustomerID)
		}
		return nil
	}, dir, coll)
}

// AddDeal 新建商机
func (s *CRMService) AddDeal(ctx context.Context, caller model.Caller, d model.Deal) (model.Deal, error) {
	newList, created, err := s.deals.Add(caller, d, s.store.Deals)
	if err != nil {
		return model.Deal{}, err
	}
	s.store.Deals = newList
	s.store.SaveDeals(ctx)
	return created, nil
}

// UpdateDeal 更新商机
func (s *CRMService) UpdateDeal(ctx context.Context, caller model.Caller, d model.Deal) error {
	newList, err := s.deals.Update(caller, d, s.store.Deals)
	if err != nil {
		return err
	}
	s.store.Deals = newList
	s.store.SaveDeals(ctx)
	return nil
}

// DeleteDeal 删除商机并级联清理其活动
func (s *CRMService) DeleteDeal(ctx context.Context, caller model.Caller, id string) error {
	newList, err := s.deals.Delete(caller, id, s.store.Deals)
	if err != nil {
		return err
	}
	newActivities := engine.DealDeleteCascade(id, s.store.Activities)

	s.store.Deals = newList
	s.store.Activities = newActivities

	s.store.SaveDeals(ctx)
	s.store.SaveActivities(ctx)
	return nil
}

// ExportDeals 导出可见商机
func (s *CRMService) ExportDeals(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListDeals(caller))
}

// ImportDeals 导入商机
func (s *CRMService) ImportDeals(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Deals, caller, engine.Deals)
	if err != nil {
		return err
	}
	s.store.Deals = merged
	s.store.SaveDeals(ctx)
	return nil
}

// ==================== Activity ====================

// ListActivities 可见活动
func (s *CRMService) ListActivities(caller model.Caller) []model.Activity {
	return s.activities.List(caller, s.store.Activities)
}

// SearchActivities 按 标题/类型/状态/备注 + 关联客户/商机/供应商名 搜索
func (s *CRMService) SearchActivities(caller model.Caller, query string) []model.Activity {
	return engine.Search(query, s.ListActivities(caller), func(a model.Activity) []string {
		fields := []string{a.Title, string(a.Type), string(a.Status), a.Notes}
		if a.CustomerID != "" {
			fields = append(fields, s.CustomerName(a.CustomerID))
		}
		if a.DealID != "" {
			fields = append(fields, s.DealName(a.DealID))
		}
		if a.SupplierID != "" {
			fields = append(fields, s.SupplierName(a.SupplierID))
		}
		return fields
	})
}

// SortActivities 按字段稳定排序
func (s *CRMService) SortActivities(records []model.Activity, key string, dir engine.Direction) []model.Activity {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(a model.Activity) any {
		switch key {
		case "title":
			return a.Title
		case "type":
			return string(a.Type)
		case "status":
			return string(a.Status)
		case "dueDate":
			return a.DueDate
		case "customer":
			return s.CustomerName(a.CustomerID)
		}
		return nil
	}, dir, coll)
}

// AddActivity 新建活动
func (s *CRMService) AddActivity(ctx context.Context, caller model.Caller, a model.Activity) (model.Activity, error) {
	newList, created, err := s.activities.Add(caller, a, s.store.Activities)
	if err != nil {
		return model.Activity{}, err
	}
	s.store.Activities = newList
	s.store.SaveActivities(ctx)
	return created, nil
}

// UpdateActivity 更新活动
func (s *CRMService) UpdateActivity(ctx context.Context, caller model.Caller, a model.Activity) error {
	newList, err := s.activities.Update(caller, a, s.store.Activities)
	if err != nil {
		return err
	}
	s.store.Activities = newList
	s.store.SaveActivities(ctx)
	return nil
}

// DeleteActivity 删除活动，无级联
func (s *CRMService) DeleteActivity(ctx context.Context, caller model.Caller, id string) error {
	newList, err := s.activities.Delete(caller, id, s.store.Activities)
	if err != nil {
		return err
	}
	s.store.Activities = newList
	s.store.SaveActivities(ctx)
	return nil
}

// ExportActivities 导出可见活动
func (s *CRMService) ExportActivities(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListActivities(caller))
}

// ImportActivities 导入活动
func (s *CRMService) ImportActivities(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Activities, caller, engine.Activities)
	if err != nil {
		return err
	}
	s.store.Activities = merged
	s.store.SaveActivities(ctx)
	return nil
}

// ==================== Campaign ====================

// ListCampaigns 可见营销活动；Viewer 恒为空
func (s *CRMService) ListCampaigns(caller model.Caller) []model.Campaign {
	return s.campaigns.List(caller, s.store.Campaigns)
}

// SearchCampaigns 按 名称/描述/状态/关联客户名 搜索
func (s *CRMService) SearchCampaigns(caller model.Caller, query string) []model.Campaign {
	return engine.Search(query, s.ListCampaigns(caller), func(c model.Campaign) []string {
		fields := []string{c.Name, c.Description, string(c.Status)}
		for _, cid := range c.LinkedCustomerIDs {
			fields = append(fields, s.CustomerName(cid))
		}
		return fields
	})
}

// SortCampaigns 按字段稳定排序
func (s *CRMService) SortCampaigns(records []model.Campaign, key string, dir engine.Direction) []model.Campaign {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(c model.Campaign) any {
		switch key {
		case "name":
			return c.Name
		case "status":
			return string(c.Status)
		case "startDate":
			return c.StartDate
		case "endDate":
			return c.EndDate
		}
		return nil
	}, dir, coll)
}

// AddCampaign 新建营销活动
func (s *CRMService) AddCampaign(ctx context.Context, caller model.Caller, c model.Campaign) (model.Campaign, error) {
	newList, created, err := s.campaigns.Add(caller, c, s.store.Campaigns)
	if err != nil {
		return model.Campaign{}, err
	}
	s.store.Campaigns = newList
	s.store.SaveCampaigns(ctx)
	return created, nil
}

// UpdateCampaign 更新营销活动
func (s *CRMService) UpdateCampaign(ctx context.Context, caller model.Caller, c model.Campaign) error {
	newList, err := s.campaigns.Update(caller, c, s.store.Campaigns)
	if err != nil {
		return err
	}
	s.store.Campaigns = newList
	s.store.SaveCampaigns(ctx)
	return nil
}

// DeleteCampaign 删除营销活动，无级联
func (s *CRMService) DeleteCampaign(ctx context.Context, caller model.Caller, id string) error {
	newList, err := s.campaigns.Delete(caller, id, s.store.Campaigns)
	if err != nil {
		return err
	}
	s.store.Campaigns = newList
	s.store.SaveCampaigns(ctx)
	return nil
}

// ExportCampaigns 导出可见营销活动
func (s *CRMService) ExportCampaigns(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListCampaigns(caller))
}

// ImportCampaigns 导入营销活动
func (s *CRMService) ImportCampaigns(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Campaigns, caller, engine.Campaigns)
	if err != nil {
		return err
	}
	s.store.Campaigns = merged
	s.store.SaveCampaigns(ctx)
	return nil
}

// ==================== Product ====================

// ListProducts 可见产品
func (s *CRMService) ListProducts(caller model.Caller) []model.Product {
	return s.products.List(caller, s.store.Products)
}

// SearchProducts 按 名称/描述/类别/SKU 搜索
func (s *CRMService) SearchProducts(caller model.Caller, query string) []model.Product {
	return engine.Search(query, s.ListProducts(caller), func(p model.Product) []string {
		return []string{p.Name, p.Description, string(p.Category), p.SKU}
	})
}

// SortProducts 按字段稳定排序
func (s *CRMService) SortProducts(records []model.Product, key string, dir engine.Direction) []model.Product {
	coll := engine.NewCollator(s.tr.Language())
	return engine.SortBy(records, func(p model.Product) any {
		switch key {
		case "name":
			return p.Name
		case "price":
			return p.Price
		case "category":
			return string(p.Category)
		case "sku":
			return p.SKU
		}
		return nil
	}, dir, coll)
}

// AddProduct 新建产品
func (s *CRMService) AddProduct(ctx context.Context, caller model.Caller, p model.Product) (model.Product, error) {
	newList, created, err := s.products.Add(caller, p, s.store.Products)
	if err != nil {
		return model.Product{}, err
	}
	s.store.Products = newList
	s.store.SaveProducts(ctx)
	return created, nil
}

// UpdateProduct 更新产品
func (s *CRMService) UpdateProduct(ctx context.Context, caller model.Caller, p model.Product) error {
	newList, err := s.products.Update(caller, p, s.store.Products)
	if err != nil {
		return err
	}
	s.store.Products = newList
	s.store.SaveProducts(ctx)
	return nil
}

// DeleteProduct 删除产品，无级联
func (s *CRMService) DeleteProduct(ctx context.Context, caller model.Caller, id string) error {
	newList, err := s.products.Delete(caller, id, s.store.Products)
	if err != nil {
		return err
	}
	s.store.Products = newList
	s.store.SaveProducts(ctx)
	return nil
}

// ExportProducts 导出可见产品
func (s *CRMService) ExportProducts(caller model.Caller) ([]byte, error) {
	return codec.Export(s.ListProducts(caller))
}

// ImportProducts 导入产品
func (s *CRMService) ImportProducts(ctx context.Context, caller model.Caller, blob []byte) error {
	merged, err := codec.Import(blob, s.store.Products, caller, engine.Products)
	if err != nil {
		return err
	}
	s.store.Products = merged
	s.store.SaveProducts(ctx)
	return nil
}

// ==================== 佣金率 ====================

// CommissionRate 当前佣金率
func (s *CRMService) CommissionRate() float64 { return s.store.CommissionRate }

// SetCommissionRate 修改佣金率，仅 Admin
func (s *CRMService) SetCommissionRate(ctx context.Context, caller model.Caller, rate float64) error {
	if caller.Role != model.RoleAdmin {
		return errs.NewPermission()
	}
	s.store.CommissionRate = rate
	s.store.SaveCommissionRate(ctx)
	return nil
}
