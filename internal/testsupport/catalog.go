package testsupport

import (
	"encoding/json"
	"os"
	"testing"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/ledger"
	"slate/internal/logging"
)

// SampleTitles returns the standard five-title fixture set. Display names are
// deliberately out of identifier order so sort tests mean something, and the
// mix covers missing transmission dates, image-less titles, and titles without
// investment blocks.
func SampleTitles() []catalog.Title {
	return []catalog.Title{
		{
			ID:       "t-001",
			Name:     "Skybound",
			Synopsis: "A rescue crew works the thin air above the clouds.",
			TxDate:   "2025-11-02",
			Episodes: []catalog.Episode{
				{ID: "t-001-e1", Name: "Pilot", DurationMin: 44, Availability: "Ready"},
				{ID: "t-001-e2", Name: "Descent", DurationMin: 47, Availability: "In QC"},
			},
			Credits: []catalog.Credit{
				{Role: "Director", Name: "R. Vance"},
				{Role: "Producer", Name: "M. Okafor"},
			},
			Investment: &catalog.Investment{
				BudgetMillion: 12.5,
				Sensitive:     "Co-production deal under renegotiation",
			},
			MarketingAssets: []catalog.MarketingAsset{
				{ID: "t-001-a1", Label: "Key art", Type: "image", URL: "/assets/images/skybound.svg"},
				{ID: "t-001-a2", Label: "Trailer", Type: "video", URL: "/assets/video/skybound.mp4"},
			},
			Screening: &catalog.Screening{StreamURL: "/screenings/skybound.m3u8"},
		},
		{
			ID:       "t-002",
			Name:     "The Harbour Files",
			Synopsis: "Cold cases from a fishing town that never forgets.",
			TxDate:   "2024-06-18",
			Episodes: []catalog.Episode{
				{ID: "t-002-e1", Name: "Low Tide", DurationMin: 52, Availability: "Ready"},
				{ID: "t-002-e2", Name: "Undertow", DurationMin: 51, Availability: "Ready"},
				{ID: "t-002-e3", Name: "Slack Water", DurationMin: 50, Availability: "Ready"},
			},
			Credits: []catalog.Credit{{Role: "Writer", Name: "D. Hale"}},
		},
		{
			ID:       "t-003",
			Name:     "Night Shift",
			Synopsis: "Documentary following city workers after midnight.",
			Episodes: []catalog.Episode{
				{ID: "t-003-e1", Name: "Lights On", DurationMin: 58, Availability: "Ready"},
			},
			Investment: &catalog.Investment{
				BudgetMillion: 3.2,
				Sensitive:     "Broadcaster exit clause active until Q3",
			},
			MarketingAssets: []catalog.MarketingAsset{
				{ID: "t-003-a1", Label: "Sizzle reel", Type: "video", URL: "/assets/video/night-shift.mp4"},
			},
		},
		{
			ID:       "t-004",
			Name:     "Area 51 Revisited",
			Synopsis: "Archive special reopening the desert's best-kept secret.",
			TxDate:   "2026-02-01",
			MarketingAssets: []catalog.MarketingAsset{
				{ID: "t-004-a1", Label: "Poster", Type: "image", URL: "/assets/images/area-51.svg"},
			},
		},
		{
			ID:       "t-005",
			Name:     "Beacon",
			Synopsis: "A lighthouse keeper's final season.",
			TxDate:   "2024-06-18",
			Episodes: []catalog.Episode{
				{ID: "t-005-e1", Name: "First Light", DurationMin: 48, Availability: "Ready"},
				{ID: "t-005-e2", Name: "Fog", DurationMin: 49, Availability: "Scheduled"},
			},
		},
	}
}

// SampleOpportunities returns pipeline entries referencing the sample titles.
func SampleOpportunities() []catalog.Opportunity {
	return []catalog.Opportunity{
		{ID: "opp-001", TitleID: "t-001", Account: "Nordstream TV", Stage: "Negotiation", ValueGBP: 250000},
		{ID: "opp-002", TitleID: "t-001", Account: "Austral Media", Stage: "Prospecting", ValueGBP: 90000},
		{ID: "opp-003", TitleID: "t-002", Account: "Canal Nord", Stage: "Closed Won", ValueGBP: 410000},
	}
}

// SeedCatalog writes the sample fixtures to the config's catalog paths.
func SeedCatalog(t testing.TB, cfg *config.Config) {
	t.Helper()
	SeedTitles(t, cfg, SampleTitles())
	SeedOpportunities(t, cfg, SampleOpportunities())
}

// SeedTitles writes the given titles to the config's titles path.
func SeedTitles(t testing.TB, cfg *config.Config, titles []catalog.Title) {
	t.Helper()
	writeJSON(t, cfg.Catalog.TitlesPath, titles)
}

// SeedOpportunities writes the given opportunities to the config's path.
func SeedOpportunities(t testing.TB, cfg *config.Config, opportunities []catalog.Opportunity) {
	t.Helper()
	writeJSON(t, cfg.Catalog.OpportunitiesPath, opportunities)
}

// MustOpenCatalog opens a catalog store for tests.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	return store
}

// MustOpenLedger opens the configured ledger backend and closes it when the
// test finishes.
func MustOpenLedger(t testing.TB, cfg *config.Config) ledger.Store {
	t.Helper()
	store, err := ledger.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close ledger: %v", err)
		}
	})
	return store
}

func writeJSON(t testing.TB, path string, value any) {
	t.Helper()
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
