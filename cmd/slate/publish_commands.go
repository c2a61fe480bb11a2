package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/ipc"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	var role string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "publish <title-id>",
		Short: "Publish a title to its external sales page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Publish(args[0], role)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Published %s as %s\n", args[0], resp.PublishedBy)
				fmt.Fprintf(out, "Sales page: %s\n", resp.SalesURL)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Acting role; must hold publish rights")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the receipt as JSON")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newUnpublishCommand(ctx *commandContext) *cobra.Command {
	var role string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "unpublish <title-id>",
		Short: "Withdraw a title from its external sales page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Unpublish(args[0], role)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unpublished %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Acting role; must hold publish rights")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
