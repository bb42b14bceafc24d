package domain

import "github.com/shopspring/decimal"

// Employee is a staff member of a branch. PIN and QRToken identify the
// employee at the POS terminal; both are generated when the client omits them.
type Employee struct {
	EmployeeID string          `json:"employeeID"`
	TenantID   string          `json:"tenantID"`
	BranchID   string          `json:"branchID"`
	FullName   string          `json:"fullName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	PIN        string          `json:"pin"`
	QRToken    string          `json:"qrToken"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
