package main

import (
	"context"
	"fmt"
	"strings"

	"chronicle/internal/config"
	"chronicle/internal/store"
	"chronicle/internal/store/postgres"
	"chronicle/internal/store/sqlite"
)

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN: %s", dsn)
	}
}

func campaignIDByName(ctx context.Context, db store.Store, name string) (int64, error) {
	campaigns, err := db.ListCampaigns(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range campaigns {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown campaign: %s", name)
}
