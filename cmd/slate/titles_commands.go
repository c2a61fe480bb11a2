package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slate/internal/ipc"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	titlesCmd := &cobra.Command{
		Use:   "titles",
		Short: "Browse the title catalog",
	}

	titlesCmd.AddCommand(newTitlesListCommand(ctx))
	titlesCmd.AddCommand(newTitlesShowCommand(ctx))
	return titlesCmd
}

func newTitlesListCommand(ctx *commandContext) *cobra.Command {
	var (
		role             string
		search           string
		sortOrder        string
		page             int
		pageSize         int
		hasAssets        bool
		hasOpportunities bool
		jsonOutput       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List titles visible to a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.TitleList(ipc.TitleListRequest{
					Role:             role,
					Search:           search,
					Sort:             sortOrder,
					Page:             page,
					PageSize:         pageSize,
					HasAssets:        hasAssets,
					HasOpportunities: hasOpportunities,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}

				rows := make([][]string, 0, len(resp.Results))
				for _, title := range resp.Results {
					rows = append(rows, []string{
						title.ID,
						title.Name,
						dashPtr(title.TxDate),
						strconv.Itoa(title.EpisodeCount),
						yesNo(title.HasAssets),
						yesNo(title.HasOpportunities),
						yesNo(title.Published),
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "TX Date", "Episodes", "Assets", "Opportunities", "Published"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintf(out, "Role %s, page %d of %d, %d title(s)\n", resp.Role, resp.Page, resp.TotalPages, resp.Total)
				fmt.Fprintf(out, "Across the filtered set: %d with assets, %d with opportunities, %d ready episode(s)\n",
					resp.Aggregates.WithAssets, resp.Aggregates.WithOpportunities, resp.Aggregates.ReadyEpisodes)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Requester role (unknown roles fall back to the default)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring match on title names")
	cmd.Flags().StringVar(&sortOrder, "sort", "", "Sort order: alpha, episodes_desc, tx_date_desc, tx_date_asc, recent")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Titles per page (max 50)")
	cmd.Flags().BoolVar(&hasAssets, "has-assets", false, "Only titles with marketing assets")
	cmd.Flags().BoolVar(&hasOpportunities, "has-opportunities", false, "Only titles with sales opportunities")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the listing as JSON")
	return cmd
}

func newTitlesShowCommand(ctx *commandContext) *cobra.Command {
	var role string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <title-id>",
		Short: "Show one title as seen by a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.TitleDescribe(args[0], role)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp.Title)
				}
				renderTitleDetail(cmd, resp.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Requester role (unknown roles fall back to the default)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the title as JSON")
	return cmd
}

func renderTitleDetail(cmd *cobra.Command, title ipc.TitleDetail) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%s)\n", title.Name, title.ID)
	fmt.Fprintln(out, title.Synopsis)
	fmt.Fprintf(out, "TX date: %s\n", dashPtr(title.TxDate))
	fmt.Fprintf(out, "Hero image: %s\n", title.HeroImage)
	if title.Published {
		fmt.Fprintf(out, "Published: yes (%s by %s)\n", dashPtr(title.PublishedAt), dashPtr(title.PublishedBy))
		fmt.Fprintf(out, "Sales page: %s\n", dashPtr(title.SalesURL))
	} else {
		fmt.Fprintln(out, "Published: no")
	}
	if title.Investment != nil {
		line := fmt.Sprintf("Investment: %s", formatBudget(title.Investment.BudgetMillion))
		if title.Investment.Sensitive != "" {
			line += fmt.Sprintf(" (%s)", title.Investment.Sensitive)
		}
		fmt.Fprintln(out, line)
	}
	if title.Screening != nil {
		fmt.Fprintf(out, "Internal screening: %s\n", title.Screening.StreamURL)
	}

	if len(title.Episodes) > 0 {
		rows := make([][]string, 0, len(title.Episodes))
		for _, episode := range title.Episodes {
			rows = append(rows, []string{
				episode.ID,
				episode.Name,
				strconv.Itoa(episode.DurationMin),
				episode.Availability,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Episode", "Name", "Minutes", "Availability"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
	}

	for _, credit := range title.Credits {
		fmt.Fprintf(out, "%s: %s\n", credit.Role, credit.Name)
	}

	if len(title.MarketingAssets) > 0 {
		rows := make([][]string, 0, len(title.MarketingAssets))
		for _, asset := range title.MarketingAssets {
			rows = append(rows, []string{asset.ID, asset.Label, asset.Type, asset.URL})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Asset", "Label", "Type", "URL"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
	}

	if len(title.Opportunities) > 0 {
		rows := make([][]string, 0, len(title.Opportunities))
		for _, opp := range title.Opportunities {
			rows = append(rows, []string{opp.ID, opp.Account, opp.Stage, formatGBP(opp.ValueGBP)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Opportunity", "Account", "Stage", "Value"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		))
	}
}
