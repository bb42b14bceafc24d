package domain

// Branch represents a physical location belonging to a tenant.
// Code uniqueness is advisory only; BranchID is the merge key.
type Branch struct {
	BranchID string `json:"branchID"`
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
