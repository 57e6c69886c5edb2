package model

// CustomerStatus 客户状态
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
	CustomerLead     CustomerStatus = "Lead"
	CustomerProspect CustomerStatus = "Prospect"
)

// Customer 客户
// 被 Deal.CustomerID / Activity.CustomerID / Campaign.LinkedCustomerIDs 引用，
// 删除时由引擎级联清理这三处
type Customer struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Company string         `json:"company"`
	Status  CustomerStatus `json:"status"`
	Notes   string         `json:"notes,omitempty"`
	OwnerID string         `json:"ownerId,omitempty"`
	Extra   Extra          `json:"-"` // 见 extra.go
}
