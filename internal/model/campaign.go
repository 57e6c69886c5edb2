package model

// CampaignStatus 营销活动状态
type CampaignStatus string

const (
	CampaignPlanning  CampaignStatus = "Planning"
	CampaignActive    CampaignStatus = "Active"
	CampaignCompleted CampaignStatus = "Completed"
	CampaignCancelled CampaignStatus = "Cancelled"
)

// Campaign 营销活动
// 通过 ID 列表关联多个客户；Viewer 角色完全不可见（与其他实体不同，注意保留该差异）
type Campaign struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	Status            CampaignStatus `json:"status"`
	StartDate         string         `json:"startDate"` // YYYY-MM-DD
	EndDate           string         `json:"endDate"`   // YYYY-MM-DD
	LinkedCustomerIDs []string       `json:"linkedCustomerIds"`
	OwnerID           string         `json:"ownerId,omitempty"`
	Extra             Extra          `json:"-"`
}
