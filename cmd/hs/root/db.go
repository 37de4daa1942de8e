package root

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ukprmenbersaku-abc/help-study/internal/config"
	"github.com/ukprmenbersaku-abc/help-study/internal/logging"
	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
	"github.com/ukprmenbersaku-abc/help-study/internal/storage"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sql.DB
	svc    *planner.Service
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	override := cfg.DB.Path
	if strings.TrimSpace(dbFlag) != "" {
		override = dbFlag
	}
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, path)
}

// openApp loads configuration, builds the logger and opens the planner.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	svc := planner.NewService(db, logger.Named("planner"), planner.WithBadges(cfg.BadgeDefs()))
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &app{cfg: cfg, logger: logger, db: db, svc: svc}, cleanup, nil
}
