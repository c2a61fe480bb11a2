package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, status)
				}

				colorize := stdoutIsTerminal()
				out := cmd.OutOrStdout()
				running := statusWarn
				runningMsg := "stopped"
				if status.Running {
					running = statusOK
					runningMsg = fmt.Sprintf("running (pid %d)", status.PID)
				}
				fmt.Fprintln(out, renderStatusLine("Daemon", running, runningMsg, colorize))
				fmt.Fprintln(out, renderStatusLine("Titles", statusInfo, fmt.Sprintf("%d loaded, %d published", status.TitleCount, status.PublishedCount), colorize))
				fmt.Fprintln(out, renderStatusLine("Ledger", statusInfo, fmt.Sprintf("%s (%s)", status.LedgerBackend, status.LedgerPath), colorize))
				fmt.Fprintln(out, renderStatusLine("Default role", statusInfo, status.DefaultRole, colorize))
				fmt.Fprintln(out, renderStatusLine("Lock file", statusInfo, status.LockFilePath, colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}
