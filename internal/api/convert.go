package api

import (
	"time"

	"slate/internal/discovery"
	"slate/internal/publish"
	"slate/internal/roles"
)

// FromListResult converts a discovery page into its wire shape.
func FromListResult(result *discovery.ListResult) TitleListResponse {
	if result == nil {
		return TitleListResponse{Page: 1, TotalPages: 1, Results: []TitleSummary{}}
	}
	results := result.Results
	if results == nil {
		results = []TitleSummary{}
	}
	return TitleListResponse{
		Role:       result.Role,
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Aggregates: Aggregates{
			WithAssets:        result.Aggregates.WithAssets,
			WithOpportunities: result.Aggregates.WithOpportunities,
			ReadyEpisodes:     result.Aggregates.ReadyEpisodes,
		},
		Results: results,
	}
}

// FromReceipt converts a publish receipt into its wire shape.
func FromReceipt(receipt *publish.Receipt) PublishResponse {
	if receipt == nil {
		return PublishResponse{}
	}
	return PublishResponse{
		Success:     true,
		Published:   true,
		SalesURL:    receipt.SalesURL,
		PublishedAt: receipt.PublishedAt.UTC().Format(time.RFC3339),
		PublishedBy: receipt.PublishedBy,
	}
}

// FromDefinitions converts the configured role table into the directory
// payload, preserving configuration order.
func FromDefinitions(defs []roles.Definition) []RoleInfo {
	out := make([]RoleInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, RoleInfo{Role: def.Name, Description: def.Description})
	}
	return out
}
