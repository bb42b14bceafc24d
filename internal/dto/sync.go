package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SyncResult summarises one reconciliation batch. Skipped only counts under the
// create-or-skip sale policy and stays zero elsewhere.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
	Skipped int `json:"skipped,omitempty"`
}

// SyncResponse is the normalized success envelope for every sync endpoint.
type SyncResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
	Errors  int  `json:"errors"`
	Skipped int  `json:"skipped,omitempty"`
}

// ToSyncResponse wraps a SyncResult into the response envelope.
func ToSyncResponse(r SyncResult) SyncResponse {
	return SyncResponse{Success: true, Created: r.Created, Updated: r.Updated, Errors: r.Errors, Skipped: r.Skipped}
}

// Batch request bodies. Items use pointer fields so the engine can tell an
// absent field from a zero value when applying its creation defaults.

type BranchSyncRequest struct {
	TenantID string        `json:"tenantId" binding:"required"`
	Items    []BranchInput `json:"items" binding:"required"`
}

type BranchInput struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

type CategorySyncRequest struct {
	TenantID string          `json:"tenantId" binding:"required"`
	Items    []CategoryInput `json:"items" binding:"required"`
}

type CategoryInput struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ShowInPOS   *bool   `json:"showInPos"`
	SortOrder   *int    `json:"sortOrder"`
	BranchID    *string `json:"branchId"`
}

type ProductSyncRequest struct {
	TenantID string         `json:"tenantId" binding:"required"`
	Items    []ProductInput `json:"items" binding:"required"`
}

type ProductInput struct {
	ID            string           `json:"id"`
	Name          *string          `json:"name"`
	SKU           *string          `json:"sku"`
	CategoryID    *string          `json:"categoryId"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	Cost          *decimal.Decimal `json:"cost"`
	StockQuantity *decimal.Decimal `json:"stockQuantity"`
	Unit          *string          `json:"unit"`
	TaxRate       *decimal.Decimal `json:"taxRate"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
	IsActive      *bool            `json:"isActive"`
	BranchID      *string          `json:"branchId"`
}

type EmployeeSyncRequest struct {
	TenantID string          `json:"tenantId" binding:"required"`
	Items    []EmployeeInput `json:"items" binding:"required"`
}

type EmployeeInput struct {
	ID         string           `json:"id"`
	FullName   *string          `json:"fullName"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Role       *string          `json:"role"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	PIN        *string          `json:"pin"`
	QRToken    *string          `json:"qrToken"`
	IsActive   *bool            `json:"isActive"`
	BranchID   *string          `json:"branchId"`
}

type CustomerSyncRequest struct {
	TenantID string          `json:"tenantId" binding:"required"`
	Items    []CustomerInput `json:"items" binding:"required"`
}

type CustomerInput struct {
	ID            string           `json:"id"`
	CustomerName  *string          `json:"customerName"`
	AccountNumber *string          `json:"accountNumber"`
	Email         *string          `json:"email"`
	Phone         *string          `json:"phone"`
	Balance       *decimal.Decimal `json:"balance"`
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	Status        *string          `json:"status"`
	BranchID      *string          `json:"branchId"`
}

type MenuItemSyncRequest struct {
	TenantID string          `json:"tenantId" binding:"required"`
	Items    []MenuItemInput `json:"items" binding:"required"`
}

type MenuItemInput struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name"`
	CategoryID  *string          `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
	IsAvailable *bool            `json:"isAvailable"`
	ImageURL    *string          `json:"imageUrl"`
	BranchID    *string          `json:"branchId"`
}

type SaleSyncRequest struct {
	TenantID string      `json:"tenantId" binding:"required"`
	Items    []SaleInput `json:"items" binding:"required"`
}

type SaleInput struct {
	ID            string           `json:"id"`
	ReceiptNo     *int64           `json:"receiptNo"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	TaxTotal      *decimal.Decimal `json:"taxTotal"`
	Total         *decimal.Decimal `json:"total"`
	PaymentMethod *string          `json:"paymentMethod"`
	CashAmount    *decimal.Decimal `json:"cashAmount"`
	CardAmount    *decimal.Decimal `json:"cardAmount"`
	CustomerID    *string          `json:"customerId"`
	BranchID      *string          `json:"branchId"`
	Items         []SaleItemInput  `json:"items"`
}

type SaleItemInput struct {
	ProductID *string          `json:"productId"`
	Name      *string          `json:"name"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	LineTotal *decimal.Decimal `json:"lineTotal"`
	TaxRate   *decimal.Decimal `json:"taxRate"`
}

type TableSyncRequest struct {
	TenantID string       `json:"tenantId" binding:"required"`
	Items    []TableInput `json:"items" binding:"required"`
}

type TableInput struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Capacity  *int    `json:"capacity"`
	Status    *string `json:"status"`
	SectionID *string `json:"sectionId"`
	PosX      *int    `json:"posX"`
	PosY      *int    `json:"posY"`
	BranchID  *string `json:"branchId"`
}

type TableSectionSyncRequest struct {
	TenantID string              `json:"tenantId" binding:"required"`
	Items    []TableSectionInput `json:"items" binding:"required"`
}

type TableSectionInput struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	SortOrder *int    `json:"sortOrder"`
	BranchID  *string `json:"branchId"`
}

// Singleton entity types carry one object instead of an array.

type CashRegisterSyncRequest struct {
	TenantID string            `json:"tenantId" binding:"required"`
	Items    CashRegisterInput `json:"items" binding:"required"`
}

type CashRegisterInput struct {
	ID             string           `json:"id"`
	BranchID       *string          `json:"branchId"`
	BusinessDate   *string          `json:"businessDate"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	ClosingBalance *decimal.Decimal `json:"closingBalance"`
	CashTotal      *decimal.Decimal `json:"cashTotal"`
	CardTotal      *decimal.Decimal `json:"cardTotal"`
	Status         *string          `json:"status"`
	OpenedBy       *string          `json:"openedBy"`
	ClosedBy       *string          `json:"closedBy"`
}

type SettingsSyncRequest struct {
	TenantID string          `json:"tenantId" binding:"required"`
	Items    json.RawMessage `json:"items" binding:"required"`
}

// PropagateRequest triggers a cross-store propagation run for one tenant.
type PropagateRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
}

// PropagationResult reports how many rows were exported per collection.
type PropagationResult struct {
	Branches   int `json:"branches"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Employees  int `json:"employees"`
	Sales      int `json:"sales"`
}
