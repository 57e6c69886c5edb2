package store

import (
	"log"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"crm_dev_v1_202601/internal/model"
)

// 种子数据：首次启动（或对应 key 缺失/损坏）时的初始集合，
// 登出后也会恢复到这份数据

// SeedCustomers 初始客户
func SeedCustomers() []model.Customer {
	return []model.Customer{
		{ID: "cust-1", Name: "Acme Corp", Email: "contact@acmecorp.com", Phone: "555-1001", Company: "Acme Corp", Status: model.CustomerActive, Notes: "Long-standing client, always pays on time. Interested in new product line.", OwnerID: "user-admin"},
		{ID: "cust-2", Name: "Globex Inc.", Email: "info@globex.com", Phone: "555-2002", Company: "Globex Inc.", Status: model.CustomerLead, Notes: "New lead from recent conference. Needs follow-up call next week.", OwnerID: "user-sales1"},
		{ID: "cust-3", Name: "Cyberdyne Systems", Email: "sales@cyberdyne.net", Phone: "555-3003", Company: "Cyberdyne Systems", Status: model.CustomerActive, Notes: "Valuable partner, exploring expansion opportunities.", OwnerID: "user-sales2"},
		{ID: "cust-4", Name: "Initech Solutions", Email: "support@initech.com", Phone: "555-4004", Company: "Initech Solutions", Status: model.CustomerProspect, Notes: "Potential client, needs a demo. Budget seems tight.", OwnerID: "user-sales1"},
		{ID: "cust-5", Name: "Umbrella Corp", Email: "contact@umbrellacorp.com", Phone: "555-5005", Company: "Umbrella Corp", Status: model.CustomerInactive, Notes: "Old client, no recent activity.", OwnerID: "user-admin"},
	}
}

// SeedSuppliers 初始供应商
func SeedSuppliers() []model.Supplier {
	return []model.Supplier{
		{ID: "sup-1", Name: "Tech Parts Ltd.", ContactPerson: "Alice Smith", Email: "alice@techparts.com", Phone: "555-6001", Company: "Tech Parts Ltd.", Status: model.SupplierPreferred, Notes: "Primary supplier for electronic components. Reliable and cost-effective.", OwnerID: "user-admin"},
		{ID: "sup-2", Name: "Office Supplies Co.", ContactPerson: "Bob Johnson", Email: "bob@officesupplies.net", Phone: "555-6002", Company: "Office Supplies Co.", Status: model.SupplierActive, Notes: "Regular supplier for office consumables. Good prices.", OwnerID: "user-sales1"},
	}
}

// SeedDeals 初始商机
func SeedDeals() []model.Deal {
	return []model.Deal{
		{ID: "deal-1", Name: "Acme Corp - Software License", CustomerID: "cust-1", Value: 15000, Stage: model.StageProposal, CloseDate: "2024-07-31", Notes: "Sent initial proposal, waiting for feedback. Follow-up expected next week.", OwnerID: "user-admin"},
		{ID: "deal-2", Name: "Globex Inc. - Cloud Migration", CustomerID: "cust-2", Value: 50000, Stage: model.StageQualification, CloseDate: "2024-08-15", Notes: "Initial discussion positive. Need to schedule a deep-dive meeting.", OwnerID: "user-sales1"},
		{ID: "deal-3", Name: "Cyberdyne Systems - Hardware Upgrade", CustomerID: "cust-3", Value: 25000, Stage: model.StageNegotiation, CloseDate: "2024-07-20", Notes: "Client requested a discount. Reviewing options with management.", OwnerID: "user-sales2"},
		{ID: "deal-4", Name: "Acme Corp - New Product Rollout", CustomerID: "cust-1", Value: 30000, Stage: model.StageWon, CloseDate: "2024-06-25", Notes: "Deal won last month. Client very happy with the service.", OwnerID: "user-admin"},
		{ID: "deal-5", Name: "Initech Solutions - Support Contract", CustomerID: "cust-4", Value: 10000, Stage: model.StageProposal, CloseDate: "2024-09-01", Notes: "Drafted support contract.", OwnerID: "user-sales1"},
	}
}

// SeedActivities 初始活动
func SeedActivities() []model.Activity {
	return []model.Activity{
		{ID: "act-1", Title: "Call with Acme Corp", Type: model.ActivityCall, Status: model.ActivityPending, DueDate: "2024-07-15", Notes: "Discuss proposal details for software license.", CustomerID: "cust-1", DealID: "deal-1", OwnerID: "user-admin"},
		{ID: "act-2", Title: "Meeting with Globex Inc.", Type: model.ActivityMeeting, Status: model.ActivityPending, DueDate: "2024-07-18", Notes: "Deep-dive into cloud migration requirements.", CustomerID: "cust-2", DealID: "deal-2", OwnerID: "user-sales1"},
		{ID: "act-3", Title: "Send follow-up email to Cyberdyne Systems", Type: model.ActivityEmail, Status: model.ActivityCompleted, DueDate: "2024-07-08", Notes: "Sent updated pricing information.", CustomerID: "cust-3", DealID: "deal-3", OwnerID: "user-sales2"},
		{ID: "act-4", Title: "Prepare demo for Initech Solutions", Type: model.ActivityTask, Status: model.ActivityPending, DueDate: "2024-07-16", Notes: "Focus on integration features.", CustomerID: "cust-4", OwnerID: "user-sales1"},
		{ID: "act-5", Title: "Order components from Tech Parts Ltd.", Type: model.ActivityTask, Status: model.ActivityCompleted, DueDate: "2024-07-01", Notes: "Placed order for new batch of chips.", SupplierID: "sup-1", OwnerID: "user-admin"},
		{ID: "act-6", Title: "Review Q3 strategy with Jane", Type: model.ActivityMeeting, Status: model.ActivityPending, DueDate: "2024-07-22", Notes: "Discuss sales goals for the next quarter.", OwnerID: "user-admin"},
	}
}

// SeedCampaigns 初始营销活动
func SeedCampaigns() []model.Campaign {
	return []model.Campaign{
		{ID: "camp-1", Name: "Summer Product Launch", Description: "Campaign to promote the new summer product line to existing active customers.", Status: model.CampaignActive, StartDate: "2024-07-01", EndDate: "2024-08-31", LinkedCustomerIDs: []string{"cust-1", "cust-3"}, OwnerID: "user-admin"},
		{ID: "camp-2", Name: "Lead Nurturing Q3", Description: "Automated email sequence for new leads generated in Q3.", Status: model.CampaignPlanning, StartDate: "2024-07-15", EndDate: "2024-09-30", LinkedCustomerIDs: []string{"cust-2", "cust-4"}, OwnerID: "user-sales1"},
	}
}

// SeedProducts 初始产品
func SeedProducts() []model.Product {
	return []model.Product{
		{ID: "prod-1", Name: "CRM Pro License", Description: "Annual license for CRM Pro software with advanced features.", Price: 1200, Category: model.CategorySoftware, SKU: "SW-CRM-PRO-2024", OwnerID: "user-admin"},
		{ID: "prod-2", Name: "Cloud Migration Service", Description: "Full service for migrating on-premise infrastructure to cloud platforms.", Price: 15000, Category: model.CategoryService, SKU: "SVC-CLOUD-MIG", OwnerID: "user-sales1"},
		{ID: "prod-3", Name: "Enterprise Hardware Pack", Description: "Bundle of servers and network equipment for large organizations.", Price: 25000, Category: model.CategoryHardware, SKU: "HW-ENT-BUNDLE", OwnerID: "user-admin"},
		{ID: "prod-4", Name: "Strategic Consulting Hour", Description: "One hour of expert strategic consulting on business growth.", Price: 300, Category: model.CategoryConsulting, SKU: "SVC-CONSULT-HR", OwnerID: "user-sales2"},
	}
}

var (
	seedPasswordOnce sync.Once
	seedPasswordHash string
)

// SeedPassword 演示账号的统一明文密码
const SeedPassword = "password"

func seedHash() string {
	seedPasswordOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[Store] 生成种子密码哈希失败: %v", err)
		}
		seedPasswordHash = string(h)
	})
	return seedPasswordHash
}

// SeedUsers 初始用户目录（密码统一为 password，存哈希）
func SeedUsers() []model.SysUser {
	h := seedHash()
	return []model.SysUser{
		{ID: "user-admin", Username: "Admin User", Email: "admin@example.com", Password: h, Role: model.RoleAdmin},
		{ID: "user-sales1", Username: "Sales Rep One", Email: "sales1@example.com", Password: h, Role: model.RoleSales},
		{ID: "user-sales2", Username: "Sales Rep Two", Email: "sales2@example.com", Password: h, Role: model.RoleSales},
		{ID: "user-viewer", Username: "Viewer Only", Email: "viewer@example.com", Password: h, Role: model.RoleViewer},
	}
}
