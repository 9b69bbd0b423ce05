package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
)

func campaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}
	cmd.AddCommand(campaignAddCmd())
	cmd.AddCommand(campaignListCmd())
	return cmd
}

func campaignAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.LoadProjectConfig("chronicle.yaml")
			if err != nil {
				return err
			}
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			id, err := db.CreateCampaign(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Campaign %q (id %d)\n", args[0], id)
			return nil
		},
	}
}

func campaignListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.LoadProjectConfig("chronicle.yaml")
			if err != nil {
				return err
			}
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			campaigns, err := db.ListCampaigns(ctx)
			if err != nil {
				return err
			}
			if len(campaigns) == 0 {
				fmt.Fprintln(os.Stdout, "No campaigns.")
				return nil
			}
			for _, c := range campaigns {
				fmt.Fprintf(os.Stdout, "%d\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}
