package domain

import "time"

// AuditFields holds standard audit timestamps for synced entities.
// Client devices do not supply these; the reconciliation engine stamps them.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
