package models

// Product is the read-only catalog row used to link inventory to products.
type Product struct {
	ID          string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Model       string  `gorm:"column:model;size:64;uniqueIndex" json:"model"`
	ProductType *string `gorm:"column:product_type;size:64" json:"product_type"`
	Brand       *string `gorm:"column:brand;size:64" json:"brand"`
	Description *string `gorm:"column:description;type:text" json:"description"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// ProductRef is the slice of a product copied onto inventory rows.
type ProductRef struct {
	ID          string
	ProductType *string
}

// ProductLookup maps ProductKey(model) to its product.
type ProductLookup map[string]ProductRef

// Find returns the product for model, if any.
func (l ProductLookup) Find(model string) (ProductRef, bool) {
	ref, ok := l[ProductKey(model)]
	return ref, ok
}
