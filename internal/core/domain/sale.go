package domain

import "github.com/shopspring/decimal"

// Sale is a completed POS transaction with its nested line items.
// A sale with zero valid line items is rejected by the reconciliation engine.
type Sale struct {
	SaleID        string          `json:"saleID"`
	TenantID      string          `json:"tenantID"`
	BranchID      string          `json:"branchID"`
	ReceiptNo     int64           `json:"receiptNo"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	CashAmount    decimal.Decimal `json:"cashAmount"`
	CardAmount    decimal.Decimal `json:"cardAmount"`
	CustomerID    string          `json:"customerID"`
	Items         []SaleItem      `json:"items" db:"-"`
	AuditFields
}

// SaleItem is a single line of a sale referencing a product or menu item.
type SaleItem struct {
	LineID    string          `json:"lineID"`
	SaleID    string          `json:"saleID"`
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}
