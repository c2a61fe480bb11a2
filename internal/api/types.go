package api

import "slate/internal/views"

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// RoleInfo describes one configured role for the role directory endpoint.
type RoleInfo struct {
	Role        string `json:"role"`
	Description string `json:"description"`
}

// TitleSummary and TitleDetail are the sanitized projections served to
// clients. The view types already carry the wire-format JSON tags.
type (
	TitleSummary = views.SummaryView
	TitleDetail  = views.DetailView
)

// Aggregates summarize the filtered listing set.
type Aggregates struct {
	WithAssets        int `json:"withAssets"`
	WithOpportunities int `json:"withOpportunities"`
	ReadyEpisodes     int `json:"readyEpisodes"`
}

// TitleListResponse is one page of the title listing.
type TitleListResponse struct {
	Role       string         `json:"role"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Aggregates Aggregates     `json:"aggregates"`
	Results    []TitleSummary `json:"results"`
}

// PublishResponse confirms a publish and echoes the stored record.
type PublishResponse struct {
	Success     bool   `json:"success"`
	Published   bool   `json:"published"`
	SalesURL    string `json:"sales_url"`
	PublishedAt string `json:"published_at"`
	PublishedBy string `json:"published_by"`
}

// UnpublishResponse confirms an unpublish.
type UnpublishResponse struct {
	Success   bool `json:"success"`
	Published bool `json:"published"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running        bool   `json:"running"`
	PID            int    `json:"pid"`
	TitleCount     int    `json:"titleCount"`
	PublishedCount int    `json:"publishedCount"`
	LedgerBackend  string `json:"ledgerBackend"`
	LedgerPath     string `json:"ledgerPath"`
	LockFilePath   string `json:"lockFilePath"`
	DefaultRole    string `json:"defaultRole"`
}
