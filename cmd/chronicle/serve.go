package main

import (
	"context"

	"github.com/spf13/cobra"

	"chronicle/internal/config"
	"chronicle/internal/mcp"
	"chronicle/internal/search"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
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

	vocab, err := search.LoadVocabulary(ctx, db)
	if err != nil {
		return err
	}
	engine := search.NewEngine(db, vocab)

	server := mcp.NewServer(db, engine, cfg.Search.Locale)
	return server.Run(ctx, &sdk.StdioTransport{}, version)
}
