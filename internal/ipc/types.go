package ipc

import "slate/internal/api"

// DTOs shared with the HTTP surface.
type (
	RoleInfo          = api.RoleInfo
	TitleSummary      = api.TitleSummary
	TitleDetail       = api.TitleDetail
	TitleListResponse = api.TitleListResponse
	PublishResponse   = api.PublishResponse
	UnpublishResponse = api.UnpublishResponse
)

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse mirrors the daemon status payload.
type StatusResponse = api.DaemonStatus

// RolesRequest fetches the configured role directory.
type RolesRequest struct{}

// RolesResponse lists roles in configuration order.
type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// TitleListRequest carries the listing parameters.
type TitleListRequest struct {
	Role             string `json:"role"`
	Search           string `json:"search"`
	Sort             string `json:"sort"`
	Page             int    `json:"page"`
	PageSize         int    `json:"page_size"`
	HasAssets        bool   `json:"has_assets"`
	HasOpportunities bool   `json:"has_opportunities"`
}

// TitleDescribeRequest fetches one title's detail view.
type TitleDescribeRequest struct {
	TitleID string `json:"title_id"`
	Role    string `json:"role"`
}

// TitleDescribeResponse contains the sanitized detail view.
type TitleDescribeResponse struct {
	Title TitleDetail `json:"title"`
}

// PublishRequest marks a title as published.
type PublishRequest struct {
	TitleID string `json:"title_id"`
	Role    string `json:"role"`
}

// UnpublishRequest clears a title's publish state.
type UnpublishRequest struct {
	TitleID string `json:"title_id"`
	Role    string `json:"role"`
}
