package views_test

import (
	"testing"
	"time"

	"slate/internal/catalog"
	"slate/internal/ledger"
	"slate/internal/roles"
	"slate/internal/views"
)

func sampleTitle() catalog.Title {
	return catalog.Title{
		ID:       "t-100",
		Name:     "Skybound",
		Synopsis: "A drama above the clouds.",
		TxDate:   "2025-11-02",
		Episodes: []catalog.Episode{
			{ID: "e1", Name: "Pilot", DurationMin: 44, Availability: "Ready"},
			{ID: "e2", Name: "Descent", DurationMin: 47, Availability: "In QC"},
		},
		Credits: []catalog.Credit{{Role: "Director", Name: "R. Vance"}},
		Investment: &catalog.Investment{
			BudgetMillion: 12.5,
			Sensitive:     "Co-production deal under renegotiation",
		},
		MarketingAssets: []catalog.MarketingAsset{
			{ID: "a1", Label: "Key art", Type: "image", URL: "/assets/images/skybound.svg"},
			{ID: "a2", Label: "Trailer", Type: "video", URL: "/assets/video/skybound.mp4"},
		},
	}
}

var (
	adminCaps     = roles.Capabilities{ShowInvestment: true, ShowSensitive: true, ShowOpportunities: true, CanPublish: true}
	marketingCaps = roles.Capabilities{ShowInvestment: true, ShowOpportunities: true, CanPublish: true}
	viewerCaps    = roles.Capabilities{}
)

func TestDetailInvestmentHiddenWithoutCapability(t *testing.T) {
	view := views.Sanitizer{}.Detail(sampleTitle(), viewerCaps, ledger.Record{})
	if view.Investment != nil {
		t.Fatalf("viewer must not see investment, got %#v", view.Investment)
	}
}

func TestDetailInvestmentSensitiveStripped(t *testing.T) {
	title := sampleTitle()
	view := views.Sanitizer{}.Detail(title, marketingCaps, ledger.Record{})
	if view.Investment == nil {
		t.Fatal("marketing should see investment")
	}
	if view.Investment.Sensitive != "" {
		t.Fatalf("sensitive note leaked: %q", view.Investment.Sensitive)
	}
	if view.Investment.BudgetMillion != 12.5 {
		t.Fatalf("budget altered: %v", view.Investment.BudgetMillion)
	}
	// The source record must stay untouched.
	if title.Investment.Sensitive == "" {
		t.Fatal("sanitizer mutated the catalog record")
	}
}

func TestDetailInvestmentFullForSensitiveCapability(t *testing.T) {
	view := views.Sanitizer{}.Detail(sampleTitle(), adminCaps, ledger.Record{})
	if view.Investment == nil || view.Investment.Sensitive == "" {
		t.Fatalf("admin should see the sensitive note, got %#v", view.Investment)
	}
}

func TestHeroImageFallback(t *testing.T) {
	title := sampleTitle()
	title.MarketingAssets = []catalog.MarketingAsset{
		{ID: "a2", Label: "Trailer", Type: "video", URL: "/assets/video/skybound.mp4"},
	}

	detail := views.Sanitizer{}.Detail(title, viewerCaps, ledger.Record{})
	if detail.HeroImage != catalog.DefaultHeroImage {
		t.Fatalf("detail hero = %q, want fallback", detail.HeroImage)
	}

	summary := views.Sanitizer{HeroFallback: "/assets/custom.svg"}.Summary(title, viewerCaps, ledger.Record{}, false)
	if summary.HeroImage != "/assets/custom.svg" {
		t.Fatalf("summary hero = %q, want configured fallback", summary.HeroImage)
	}
}

func TestHeroImagePrefersFirstImageAsset(t *testing.T) {
	view := views.Sanitizer{}.Detail(sampleTitle(), viewerCaps, ledger.Record{})
	if view.HeroImage != "/assets/images/skybound.svg" {
		t.Fatalf("hero = %q", view.HeroImage)
	}
}

func TestDetailPublishDefaultsWhenNoRecord(t *testing.T) {
	view := views.Sanitizer{}.Detail(sampleTitle(), viewerCaps, ledger.Record{})
	if view.Published {
		t.Fatal("expected unpublished without ledger record")
	}
	if view.SalesURL != nil || view.PublishedAt != nil || view.PublishedBy != nil {
		t.Fatalf("publish fields must be null: %#v", view)
	}
	if view.Opportunities == nil || len(view.Opportunities) != 0 {
		t.Fatalf("opportunities must be an empty list, got %#v", view.Opportunities)
	}
}

func TestDetailMergesPublishRecord(t *testing.T) {
	publishedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	record := ledger.Record{
		Published:   true,
		SalesURL:    "https://sales.example.com/titles/skybound",
		PublishedAt: &publishedAt,
		PublishedBy: "Marketing",
	}
	view := views.Sanitizer{}.Detail(sampleTitle(), viewerCaps, record)
	if !view.Published {
		t.Fatal("expected published view")
	}
	if view.SalesURL == nil || *view.SalesURL != record.SalesURL {
		t.Fatalf("sales url = %v", view.SalesURL)
	}
	if view.PublishedAt == nil || *view.PublishedAt != "2026-01-15T10:00:00Z" {
		t.Fatalf("published_at = %v", view.PublishedAt)
	}
	if view.PublishedBy == nil || *view.PublishedBy != "Marketing" {
		t.Fatalf("published_by = %v", view.PublishedBy)
	}
}

func TestSummaryGatesOpportunityFlag(t *testing.T) {
	title := sampleTitle()

	gated := views.Sanitizer{}.Summary(title, viewerCaps, ledger.Record{}, true)
	if gated.HasOpportunities {
		t.Fatal("viewer must see has_opportunities=false even when deals exist")
	}

	allowed := views.Sanitizer{}.Summary(title, marketingCaps, ledger.Record{}, true)
	if !allowed.HasOpportunities {
		t.Fatal("marketing should see has_opportunities=true")
	}
}

func TestSummaryDerivedFields(t *testing.T) {
	title := sampleTitle()
	view := views.Sanitizer{}.Summary(title, adminCaps, ledger.Record{}, false)
	if view.EpisodeCount != 2 {
		t.Fatalf("episode_count = %d", view.EpisodeCount)
	}
	if !view.HasAssets {
		t.Fatal("expected has_assets=true")
	}
	if view.TxDate == nil || *view.TxDate != "2025-11-02" {
		t.Fatalf("tx_date = %v", view.TxDate)
	}

	title.TxDate = ""
	view = views.Sanitizer{}.Summary(title, adminCaps, ledger.Record{}, false)
	if view.TxDate != nil {
		t.Fatalf("missing tx_date should be null, got %v", view.TxDate)
	}
}
