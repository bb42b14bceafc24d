package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterStatus is the open/closed state of a cash register day record.
type RegisterStatus string

const (
	RegisterOpen   RegisterStatus = "open"
	RegisterClosed RegisterStatus = "closed"
)

// CashRegister is the single logical register record for one branch on one
// business day, with running totals per payment method.
type CashRegister struct {
	RegisterID     string          `json:"registerID"`
	TenantID       string          `json:"tenantID"`
	BranchID       string          `json:"branchID"`
	BusinessDate   string          `json:"businessDate"` // YYYY-MM-DD
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CashTotal      decimal.Decimal `json:"cashTotal"`
	CardTotal      decimal.Decimal `json:"cardTotal"`
	Status         RegisterStatus  `json:"status"`
	OpenedBy       string          `json:"openedBy"`
	OpenedAt       time.Time       `json:"openedAt"`
	ClosedBy       string          `json:"closedBy"`
	ClosedAt       *time.Time      `json:"closedAt"`
	AuditFields
}
