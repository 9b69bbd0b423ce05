package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
	"chronicle/internal/search"
	"chronicle/internal/validate"
)

func validateCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a campaign for data problems that weaken search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(campaign)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "Campaign name")
	cmd.MarkFlagRequired("campaign")
	return cmd
}

func runValidate(campaign string) error {
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

	vocab, err := search.LoadVocabulary(ctx, db)
	if err != nil {
		return err
	}

	findings, err := validate.Run(ctx, db, vocab, campaignID)
	if err != nil {
		return err
	}

	if len(findings) == 0 {
		fmt.Fprintln(os.Stdout, "No problems found.")
		return nil
	}

	for _, f := range findings {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", f.Kind, f.Subject, f.Detail)
	}
	return fmt.Errorf("validation found %d problems", len(findings))
}
