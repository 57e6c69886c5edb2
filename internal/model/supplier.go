package model

// SupplierStatus 供应商状态
type SupplierStatus string

const (
	SupplierActive      SupplierStatus = "Active"
	SupplierInactive    SupplierStatus = "Inactive"
	SupplierPreferred   SupplierStatus = "Preferred"
	SupplierBlacklisted SupplierStatus = "Blacklisted"
)

// Supplier 供应商
// 被 Activity.SupplierID 引用，删除时级联清理相关活动
type Supplier struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ContactPerson string         `json:"contactPerson"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Company       string         `json:"company"`
	Status        SupplierStatus `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	OwnerID       string         `json:"ownerId,omitempty"`
	Extra         Extra          `json:"-"`
}
