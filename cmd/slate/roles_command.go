package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/ipc"
)

func newRolesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the configured requester roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Roles()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp.Roles)
				}

				rows := make([][]string, 0, len(resp.Roles))
				for _, role := range resp.Roles {
					rows = append(rows, []string{role.Role, role.Description})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Role", "Description"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit roles as JSON")
	return cmd
}
