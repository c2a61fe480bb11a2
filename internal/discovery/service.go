package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/ledger"
	"slate/internal/logging"
	"slate/internal/roles"
	"slate/internal/views"
)

// Sort orders accepted by List. Anything else falls back to SortAlpha.
const (
	SortAlpha        = "alpha"
	SortEpisodesDesc = "episodes_desc"
	SortTxDateDesc   = "tx_date_desc"
	SortTxDateAsc    = "tx_date_asc"
	SortRecent       = "recent"
)

// Page size bounds applied to every listing request.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// ListRequest carries the raw listing parameters. Out-of-range values are
// coerced, never rejected: unknown roles and sorts collapse to their defaults
// and paging is clamped.
type ListRequest struct {
	Role             string
	Search           string
	Sort             string
	Page             int
	PageSize         int
	HasAssets        bool
	HasOpportunities bool
}

// Aggregates summarize the whole filtered set, independent of paging.
type Aggregates struct {
	WithAssets        int
	WithOpportunities int
	ReadyEpisodes     int
}

// ListResult is a single page of sanitized title summaries.
type ListResult struct {
	Role       string
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Aggregates Aggregates
	Results    []views.SummaryView
}

// Service executes discovery queries against the catalog and ledger.
type Service struct {
	catalog   *catalog.Store
	policy    *roles.Policy
	ledger    ledger.Store
	sanitizer views.Sanitizer
	logger    *slog.Logger
}

// NewService wires a discovery service against its collaborators.
func NewService(store *catalog.Store, policy *roles.Policy, led ledger.Store, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		catalog:   store,
		policy:    policy,
		ledger:    led,
		sanitizer: views.Sanitizer{HeroFallback: cfg.Catalog.HeroFallback},
		logger:    logging.NewComponentLogger(logger, "discovery"),
	}
}

// List returns one page of title summaries for the requesting role.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	role, caps := s.policy.Resolve(req.Role)
	search := strings.ToLower(req.Search)

	filtered := make([]catalog.Title, 0, s.catalog.Len())
	for _, title := range s.catalog.All() {
		if !strings.Contains(strings.ToLower(title.Name), search) {
			continue
		}
		if req.HasAssets && !title.HasAssets() {
			continue
		}
		if req.HasOpportunities && !s.catalog.HasOpportunities(title.ID) {
			continue
		}
		filtered = append(filtered, title)
	}

	var aggregates Aggregates
	for _, title := range filtered {
		if title.HasAssets() {
			aggregates.WithAssets++
		}
		if s.catalog.HasOpportunities(title.ID) {
			aggregates.WithOpportunities++
		}
		aggregates.ReadyEpisodes += title.ReadyEpisodes()
	}

	total := len(filtered)
	pageSize := clampPageSize(req.PageSize)
	totalPages := 1
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	s.sortTitles(filtered, req.Sort)

	records, err := s.ledger.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load publish records: %w", err)
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	results := make([]views.SummaryView, 0, end-start)
	for _, title := range filtered[start:end] {
		results = append(results, s.sanitizer.Summary(title, caps, records[title.ID], s.catalog.HasOpportunities(title.ID)))
	}

	s.logger.Debug("title listing served",
		logging.String(logging.FieldRole, role),
		logging.String("sort", req.Sort),
		logging.Int("total", total),
		logging.Int("page", page))

	return &ListResult{
		Role:       role,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Aggregates: aggregates,
		Results:    results,
	}, nil
}

// Get returns the sanitized detail view of a single title, with opportunities
// attached when the role may see them.
func (s *Service) Get(ctx context.Context, titleID, roleName string) (*views.DetailView, error) {
	_, caps := s.policy.Resolve(roleName)

	title, err := s.catalog.Get(titleID)
	if err != nil {
		return nil, err
	}
	record, _, err := s.ledger.Get(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("load publish record: %w", err)
	}

	view := s.sanitizer.Detail(title, caps, record)
	if caps.ShowOpportunities {
		view.Opportunities = s.catalog.OpportunitiesFor(title.ID)
	}
	return &view, nil
}

func clampPageSize(size int) int {
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// sortTitles orders titles in place. Name comparisons are collation-aware so
// accented names interleave naturally; transmission dates compare as plain
// strings, which is correct for the ISO date format and keeps undated titles
// first in ascending order. Collators are not safe for concurrent use, so each
// call builds its own.
func (s *Service) sortTitles(titles []catalog.Title, order string) {
	collator := collate.New(language.English)
	byName := func(a, b catalog.Title) int {
		return collator.CompareString(a.Name, b.Name)
	}

	switch order {
	case SortEpisodesDesc:
		sort.SliceStable(titles, func(i, j int) bool {
			if d := len(titles[j].Episodes) - len(titles[i].Episodes); d != 0 {
				return d < 0
			}
			return byName(titles[i], titles[j]) < 0
		})
	case SortTxDateDesc:
		sort.SliceStable(titles, func(i, j int) bool {
			if d := strings.Compare(titles[j].TxDate, titles[i].TxDate); d != 0 {
				return d < 0
			}
			return byName(titles[i], titles[j]) < 0
		})
	case SortTxDateAsc:
		sort.SliceStable(titles, func(i, j int) bool {
			if d := strings.Compare(titles[i].TxDate, titles[j].TxDate); d != 0 {
				return d < 0
			}
			return byName(titles[i], titles[j]) < 0
		})
	case SortRecent:
		sort.SliceStable(titles, func(i, j int) bool {
			return titles[j].ID < titles[i].ID
		})
	default:
		sort.SliceStable(titles, func(i, j int) bool {
			return byName(titles[i], titles[j]) < 0
		})
	}
}
