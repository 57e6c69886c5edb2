package model

// ActivityType 活动类型
type ActivityType string

const (
	ActivityCall    ActivityType = "Call"
	ActivityMeeting ActivityType = "Meeting"
	ActivityEmail   ActivityType = "Email"
	ActivityTask    ActivityType = "Task"
)

// ActivityStatus 活动状态
type ActivityStatus string

const (
	ActivityPending   ActivityStatus = "Pending"
	ActivityCompleted ActivityStatus = "Completed"
	ActivityCancelled ActivityStatus = "Cancelled"
)

// Activity 活动/待办
// 三个外键各自可选、互相独立；Activity 自身不被任何实体引用
type Activity struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Type       ActivityType   `json:"type"`
	Status     ActivityStatus `json:"status"`
	DueDate    string         `json:"dueDate"` // YYYY-MM-DD
	Notes      string         `json:"notes,omitempty"`
	CustomerID string         `json:"customerId,omitempty"`
	DealID     string         `json:"dealId,omitempty"`
	SupplierID string         `json:"supplierId,omitempty"`
	OwnerID    string         `json:"ownerId,omitempty"`
	Extra      Extra          `json:"-"`
}
