package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
	"chronicle/internal/search"
)

func searchCmd() *cobra.Command {
	var campaign, kindName, locale string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a campaign's entities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0], campaign, kindName, locale)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&kindName, "kind", "item", "Entity kind to search")
	cmd.Flags().StringVar(&locale, "locale", "", "Vocabulary locale (de or en); defaults to the configured locale")
	cmd.MarkFlagRequired("campaign")
	return cmd
}

func runSearch(query, campaign, kindName, locale string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("chronicle.yaml")
	if err != nil {
		return err
	}
	if locale == "" {
		locale = cfg.Search.Locale
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

	kind, ok := search.Kinds()[kindName]
	if !ok {
		return fmt.Errorf("unknown entity kind: %s", kindName)
	}

	vocab, err := search.LoadVocabulary(ctx, db)
	if err != nil {
		return err
	}
	engine := search.NewEngine(db, vocab)

	results := engine.Search(ctx, search.Request{
		CampaignID: campaignID,
		Kind:       kind,
		Query:      query,
		Locale:     locale,
	})
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s", r.Name)
		if len(r.Related) > 0 {
			labels := make([]string, 0, len(r.Related))
			for label := range r.Related {
				labels = append(labels, label)
			}
			sort.Strings(labels)
			for _, label := range labels {
				fmt.Fprintf(os.Stdout, "  [%s: %s]", label, r.Related[label])
			}
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
