package ledger

import "time"

// Record is the publish state for a single title. The zero value means "never
// published". Mutations always rewrite the whole record; there are no partial
// updates.
type Record struct {
	Published   bool       `json:"published"`
	SalesURL    string     `json:"sales_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	PublishedBy string     `json:"published_by,omitempty"`
}
