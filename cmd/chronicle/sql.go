package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
)

func sqlCmd() *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Run a raw SQL query against the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSQL(args[0], params)
		},
	}
	cmd.Flags().StringArrayVar(&params, "param", nil, "Positional parameter as index=value (repeatable)")
	return cmd
}

func runSQL(query string, params []string) error {
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

	paramMap := make(map[string]any, len(params))
	for _, p := range params {
		key, value, found := strings.Cut(p, "=")
		if !found {
			return fmt.Errorf("invalid parameter %q, expected index=value", p)
		}
		paramMap[key] = value
	}

	rows, err := db.RunSQL(ctx, query, paramMap)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
