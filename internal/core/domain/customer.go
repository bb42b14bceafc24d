package domain

import "github.com/shopspring/decimal"

// CustomerAccountStatus enumerates the lifecycle states of a customer account.
type CustomerAccountStatus string

const (
	CustomerActive  CustomerAccountStatus = "active"
	CustomerPassive CustomerAccountStatus = "passive"
	CustomerBlocked CustomerAccountStatus = "blocked"
)

// CustomerAccount is a named credit account a branch sells against.
// AccountNumber is globally unique and generated when the client omits it.
type CustomerAccount struct {
	AccountID     string                `json:"accountID"`
	TenantID      string                `json:"tenantID"`
	BranchID      string                `json:"branchID"`
	CustomerName  string                `json:"customerName"`
	AccountNumber string                `json:"accountNumber"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Balance       decimal.Decimal       `json:"balance"`
	CreditLimit   decimal.Decimal       `json:"creditLimit"`
	Status        CustomerAccountStatus `json:"status"`
	IsActive      bool                  `json:"isActive"`
	AuditFields
}
