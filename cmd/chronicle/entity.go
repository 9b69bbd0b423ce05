package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
	"chronicle/internal/store"
)

func entityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Manage campaign entities",
	}
	cmd.AddCommand(entityAddCmd())
	cmd.AddCommand(entityListCmd())
	cmd.AddCommand(entityRemoveCmd())
	return cmd
}

func entityAddCmd() *cobra.Command {
	var campaign, kind, description string
	var attrs []string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create or update an entity",
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

			campaignID, err := campaignIDByName(ctx, db, campaign)
			if err != nil {
				return err
			}

			attributes, err := parseAttributes(attrs)
			if err != nil {
				return err
			}

			id, err := db.UpsertEntity(ctx, store.EntityInput{
				CampaignID:  campaignID,
				Kind:        kind,
				Name:        args[0],
				Description: description,
				Attributes:  attributes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Entity %q (id %d)\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind (npc, location, item, faction, lore, player)")
	cmd.Flags().StringVar(&description, "description", "", "Entity description")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "Attribute as key=value (repeatable)")
	cmd.MarkFlagRequired("campaign")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func entityListCmd() *cobra.Command {
	var campaign, kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities in a campaign",
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

			summaries, err := db.ListEntities(ctx, campaignID, kind)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(os.Stdout, "No entities.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(os.Stdout, "%s\t%s\n", s.Kind, s.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind to filter")
	cmd.MarkFlagRequired("campaign")
	return cmd
}

func entityRemoveCmd() *cobra.Command {
	var campaign, kind string
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Soft-delete an entity",
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

			campaignID, err := campaignIDByName(ctx, db, campaign)
			if err != nil {
				return err
			}

			if err := db.RemoveEntity(ctx, campaignID, kind, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind")
	cmd.MarkFlagRequired("campaign")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func parseAttributes(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid attribute %q, expected key=value", pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}
