package domain

import "github.com/shopspring/decimal"

// Product is a sellable stock item. Every persisted product resolves to a valid
// category; products submitted without one are attached to the tenant's
// fallback category before insert.
type Product struct {
	ProductID     string          `json:"productID"`
	TenantID      string          `json:"tenantID"`
	BranchID      string          `json:"branchID"`
	CategoryID    string          `json:"categoryID"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	Unit          string          `json:"unit"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
