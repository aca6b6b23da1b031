package cmd

import (
	"context"
	"fmt"
	"time"

	"ge-sync/core/config"
	"ge-sync/core/database"
	"ge-sync/core/lock"
	"ge-sync/core/storage"
	"ge-sync/feature/inventory/reconcile"
	"ge-sync/feature/inventory/snapshot"
	"ge-sync/feature/inventory/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// engine bundles everything a sync run needs.
type engine struct {
	db           *gorm.DB
	orchestrator *sync.Orchestrator
	locker       lock.Locker

	// Set only when snapshots are read from storage.
	storage   storage.Client
	snapshots *snapshot.StorageSource
}

// newEngine connects the database, the snapshot source and the lock backend and
// wires the sync orchestrator on top of them.
func newEngine(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*engine, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	eng := &engine{db: db}
	source, err := eng.newSource(cfg, logg)
	if err != nil {
		return nil, err
	}

	eng.locker, err = lock.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, err
	}

	store := reconcile.NewStore(db)
	persister := reconcile.NewPersister(store, cfg.Sync.BatchSize, logg)
	ttl := time.Duration(cfg.Sync.ProductCacheTTLSeconds) * time.Second
	syncer := sync.NewSyncer(source, store, persister, sync.NewGormActivityLog(db, logg), ttl, logg)

	eng.orchestrator = sync.NewOrchestrator(syncer)
	return eng, nil
}

func (e *engine) newSource(cfg *config.Config, logg *zap.Logger) (snapshot.Source, error) {
	switch cfg.Sync.Source {
	case "http":
		logg.Info("Using HTTP snapshot source", zap.String("base_url", cfg.Sync.HTTPBaseURL))
		return snapshot.NewHTTPSource(cfg.Sync.HTTPBaseURL, time.Duration(cfg.Sync.HTTPTimeoutSeconds)*time.Second), nil
	case "storage", "":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		logg.Info("Using storage snapshot source", zap.String("bucket", cfg.Storage.Bucket))
		e.storage = client
		e.snapshots = snapshot.NewStorageSource(client, cfg.Storage.Bucket, cfg.Sync.SnapshotPrefix)
		return e.snapshots, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot source: %s", cfg.Sync.Source)
	}
}
