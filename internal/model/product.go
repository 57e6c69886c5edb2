package model

// ProductCategory 产品类别
type ProductCategory string

const (
	CategorySoftware   ProductCategory = "Software"
	CategoryHardware   ProductCategory = "Hardware"
	CategoryService    ProductCategory = "Service"
	CategoryConsulting ProductCategory = "Consulting"
	CategoryOther      ProductCategory = "Other"
)

// Product 产品
// 不被任何实体引用，删除无级联；佣金/预测逻辑读 Deal，不读 Product
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Category    ProductCategory `json:"category"`
	SKU         string          `json:"sku"`
	OwnerID     string          `json:"ownerId,omitempty"`
	Extra       Extra           `json:"-"`
}
