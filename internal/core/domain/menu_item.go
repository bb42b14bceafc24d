package domain

import "github.com/shopspring/decimal"

// MenuItem is a sellable entry on the POS menu. Unlike products, a menu item
// with no category reference is rejected rather than defaulted.
type MenuItem struct {
	ItemID      string          `json:"itemID"`
	TenantID    string          `json:"tenantID"`
	BranchID    string          `json:"branchID"`
	CategoryID  string          `json:"categoryID"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageURL"`
	AuditFields
}
