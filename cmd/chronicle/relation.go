package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
)

func relationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relation",
		Short: "Manage entity relations",
	}
	cmd.AddCommand(relationAddCmd())
	return cmd
}

func relationAddCmd() *cobra.Command {
	var campaign, from, to, label, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update a relation between two entities",
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

			campaignID, err := campaignIDByName(ctx, db, campaign)
			if err != nil {
				return err
			}

			if err := db.UpsertRelation(ctx, campaignID, from, to, label, notes); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s -[%s]-> %s\n", from, label, to)
			return nil
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&from, "from", "", "Source entity name")
	cmd.Flags().StringVar(&to, "to", "", "Target entity name")
	cmd.Flags().StringVar(&label, "label", "", "Relation label (owner, leader, references, ...)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("campaign")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("label")
	return cmd
}
