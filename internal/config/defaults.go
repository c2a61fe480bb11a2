package config

const (
	defaultDataDir      = "~/.local/share/slate/data"
	defaultLogDir       = "~/.local/share/slate/logs"
	defaultAPIBind      = "127.0.0.1:7480"
	defaultHeroFallback = "/assets/images/default-card.svg"
	defaultLedger       = "file"
	defaultSalesBaseURL = "https://sales.example.com/titles/"
	defaultRole         = "Viewer"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	ledgerFileName   = "published.json"
	ledgerSQLiteName = "publish.db"
	titlesFileName   = "titles.json"
	oppsFileName     = "opportunities.json"
)

// Default returns a Config populated with repository defaults, including the
// standard four-role table. The default role grants nothing; every unknown
// requester collapses to it.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Catalog: Catalog{
			HeroFallback: defaultHeroFallback,
		},
		Ledger: Ledger{
			Backend: defaultLedger,
		},
		Publishing: Publishing{
			SalesBaseURL: defaultSalesBaseURL,
		},
		Policy: Policy{
			DefaultRole: defaultRole,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Roles: DefaultRoles(),
	}
}

// DefaultRoles returns the standard role table used when no roles are configured.
func DefaultRoles() []Role {
	return []Role{
		{
			Name:              "Admin",
			Description:       "Full access, including sensitive investment notes and publishing.",
			ShowInvestment:    true,
			ShowSensitive:     true,
			ShowOpportunities: true,
			CanPublish:        true,
		},
		{
			Name:              "Marketing",
			Description:       "Investment and deal visibility without sensitive notes; can publish.",
			ShowInvestment:    true,
			ShowOpportunities: true,
			CanPublish:        true,
		},
		{
			Name:              "Sales",
			Description:       "Deal pipeline and investment visibility; cannot publish.",
			ShowInvestment:    true,
			ShowOpportunities: true,
		},
		{
			Name:        "Viewer",
			Description: "Catalogue browsing only.",
		},
	}
}
