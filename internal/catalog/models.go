package catalog

// AvailabilityReady is the episode availability value counted by the discovery
// aggregates. Availability is free-form; only this exact string means ready.
const AvailabilityReady = "Ready"

// DefaultHeroImage is served for titles without an image-type marketing asset.
const DefaultHeroImage = "/assets/images/default-card.svg"

// Title is an immutable catalog record. Titles never change after load; publish
// state lives in the ledger and is joined at read time.
type Title struct {
	ID              string           `json:"title_id"`
	Name            string           `json:"title_name"`
	Synopsis        string           `json:"synopsis"`
	TxDate          string           `json:"tx_date,omitempty"`
	Episodes        []Episode        `json:"episodes"`
	Credits         []Credit         `json:"credits"`
	Investment      *Investment      `json:"investment,omitempty"`
	MarketingAssets []MarketingAsset `json:"marketing_assets"`
	Screening       *Screening       `json:"internal_screening,omitempty"`
}

// Episode belongs to exactly one title.
type Episode struct {
	ID           string `json:"episode_id"`
	Name         string `json:"name"`
	DurationMin  int    `json:"duration_min"`
	Availability string `json:"availability"`
}

// Credit is a role/name pair; order is display-significant.
type Credit struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Investment carries budget data. The Sensitive note is a stricter
// sub-permission than investment visibility itself.
type Investment struct {
	BudgetMillion float64 `json:"budget_million"`
	Sensitive     string  `json:"sensitive,omitempty"`
}

// MarketingAsset is promotional material attached to a title. The first asset
// of type "image" becomes the title's hero image.
type MarketingAsset struct {
	ID    string `json:"asset_id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

// Screening references an internal screener stream.
type Screening struct {
	StreamURL string `json:"stream_url"`
}

// Opportunity is a sales pipeline entry associated to a title.
type Opportunity struct {
	ID       string  `json:"opp_id"`
	TitleID  string  `json:"title_id"`
	Account  string  `json:"account"`
	Stage    string  `json:"stage"`
	ValueGBP float64 `json:"value_gbp"`
}

// HeroImage resolves the title's hero image: the URL of the first image-type
// marketing asset, or fallback when none exists. An empty fallback selects
// DefaultHeroImage so the result is never empty.
func (t Title) HeroImage(fallback string) string {
	for _, asset := range t.MarketingAssets {
		if asset.Type == "image" {
			return asset.URL
		}
	}
	if fallback == "" {
		return DefaultHeroImage
	}
	return fallback
}

// HasAssets reports whether the title carries any marketing assets.
func (t Title) HasAssets() bool {
	return len(t.MarketingAssets) > 0
}

// ReadyEpisodes counts episodes whose availability is exactly "Ready".
func (t Title) ReadyEpisodes() int {
	count := 0
	for _, episode := range t.Episodes {
		if episode.Availability == AvailabilityReady {
			count++
		}
	}
	return count
}
