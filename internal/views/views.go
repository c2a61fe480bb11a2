package views

import (
	"time"

	"slate/internal/catalog"
	"slate/internal/ledger"
	"slate/internal/roles"
)

// DetailView is the role-sanitized full projection of a title. Opportunities
// are attached by the caller when the role permits; the sanitizer always
// leaves an empty, never-nil sequence so denied roles still see a list shape.
type DetailView struct {
	ID              string                    `json:"title_id"`
	Name            string                    `json:"title_name"`
	Synopsis        string                    `json:"synopsis"`
	TxDate          *string                   `json:"tx_date"`
	Episodes        []catalog.Episode         `json:"episodes"`
	Credits         []catalog.Credit          `json:"credits"`
	Investment      *catalog.Investment       `json:"investment,omitempty"`
	MarketingAssets []catalog.MarketingAsset  `json:"marketing_assets"`
	Screening       *catalog.Screening        `json:"internal_screening,omitempty"`
	HeroImage       string                    `json:"hero_image"`
	Published       bool                      `json:"published"`
	SalesURL        *string                   `json:"sales_url"`
	PublishedAt     *string                   `json:"published_at"`
	PublishedBy     *string                   `json:"published_by"`
	Opportunities   []catalog.Opportunity     `json:"opportunities"`
}

// SummaryView is the role-sanitized list projection of a title.
type SummaryView struct {
	ID               string              `json:"title_id"`
	Name             string              `json:"title_name"`
	Synopsis         string              `json:"synopsis"`
	TxDate           *string             `json:"tx_date"`
	EpisodeCount     int                 `json:"episode_count"`
	HasAssets        bool                `json:"has_assets"`
	HasOpportunities bool                `json:"has_opportunities"`
	HeroImage        string              `json:"hero_image"`
	Investment       *catalog.Investment `json:"investment,omitempty"`
	Published        bool                `json:"published"`
	SalesURL         *string             `json:"sales_url"`
}

// Sanitizer builds role-appropriate views of titles. The zero value is usable
// and falls back to catalog.DefaultHeroImage.
type Sanitizer struct {
	HeroFallback string
}

// Detail produces the full view of a title for the given capabilities and
// ledger record. An absent ledger record reads as "not published".
func (s Sanitizer) Detail(title catalog.Title, caps roles.Capabilities, record ledger.Record) DetailView {
	view := DetailView{
		ID:              title.ID,
		Name:            title.Name,
		Synopsis:        title.Synopsis,
		TxDate:          optionalString(title.TxDate),
		Episodes:        copyEpisodes(title.Episodes),
		Credits:         copyCredits(title.Credits),
		Investment:      s.Investment(title.Investment, caps),
		MarketingAssets: copyAssets(title.MarketingAssets),
		Screening:       title.Screening,
		HeroImage:       title.HeroImage(s.HeroFallback),
		Opportunities:   []catalog.Opportunity{},
	}
	applyPublishState(&view.Published, &view.SalesURL, &view.PublishedAt, &view.PublishedBy, record)
	return view
}

// Summary produces the list view of a title. hasOpportunities is the caller's
// cross-reference result; it is ignored when the role cannot see opportunities.
func (s Sanitizer) Summary(title catalog.Title, caps roles.Capabilities, record ledger.Record, hasOpportunities bool) SummaryView {
	view := SummaryView{
		ID:           title.ID,
		Name:         title.Name,
		Synopsis:     title.Synopsis,
		TxDate:       optionalString(title.TxDate),
		EpisodeCount: len(title.Episodes),
		HasAssets:    title.HasAssets(),
		HeroImage:    title.HeroImage(s.HeroFallback),
		Investment:   s.Investment(title.Investment, caps),
	}
	if caps.ShowOpportunities {
		view.HasOpportunities = hasOpportunities
	}
	if record.Published {
		view.Published = true
		view.SalesURL = optionalString(record.SalesURL)
	}
	return view
}

// Investment applies the two-tier visibility rule: absent entirely without the
// investment capability; present without the sensitive note unless the role
// also holds the sensitive capability.
func (s Sanitizer) Investment(investment *catalog.Investment, caps roles.Capabilities) *catalog.Investment {
	if !caps.ShowInvestment || investment == nil {
		return nil
	}
	sanitized := *investment
	if !caps.ShowSensitive {
		sanitized.Sensitive = ""
	}
	return &sanitized
}

func applyPublishState(published *bool, salesURL, publishedAt, publishedBy **string, record ledger.Record) {
	if !record.Published {
		return
	}
	*published = true
	*salesURL = optionalString(record.SalesURL)
	*publishedBy = optionalString(record.PublishedBy)
	if record.PublishedAt != nil {
		*publishedAt = optionalString(record.PublishedAt.UTC().Format(time.RFC3339))
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func copyEpisodes(episodes []catalog.Episode) []catalog.Episode {
	cp := make([]catalog.Episode, len(episodes))
	copy(cp, episodes)
	return cp
}

func copyCredits(credits []catalog.Credit) []catalog.Credit {
	cp := make([]catalog.Credit, len(credits))
	copy(cp, credits)
	return cp
}

func copyAssets(assets []catalog.MarketingAsset) []catalog.MarketingAsset {
	cp := make([]catalog.MarketingAsset, len(assets))
	copy(cp, assets)
	return cp
}
