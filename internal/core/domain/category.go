package domain

// FallbackCategoryName is the name of the auto-created category used when a
// product arrives without a category reference. One such category exists per
// tenant+branch; the reconciliation engine reuses it on subsequent batches.
const FallbackCategoryName = "Genel"

// Category groups products and menu items within a branch.
type Category struct {
	CategoryID  string `json:"categoryID"`
	TenantID    string `json:"tenantID"`
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ShowInPOS   bool   `json:"showInPOS"`
	SortOrder   int    `json:"sortOrder"`
	AuditFields
}
