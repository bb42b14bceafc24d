package domain

// Table is a physical table on the POS floor plan.
type Table struct {
	TableID   string `json:"tableID"`
	TenantID  string `json:"tenantID"`
	BranchID  string `json:"branchID"`
	SectionID string `json:"sectionID"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Status    string `json:"status"`
	PosX      int    `json:"posX"`
	PosY      int    `json:"posY"`
	AuditFields
}

// TableSection groups tables into named floor areas.
type TableSection struct {
	SectionID string `json:"sectionID"`
	TenantID  string `json:"tenantID"`
	BranchID  string `json:"branchID"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sortOrder"`
	AuditFields
}
