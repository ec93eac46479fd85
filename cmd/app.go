package main

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/jsonl"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/postgres"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/tabular"
	"github.com/YelzhanWeb/waste-tracker/internal/app/export"
	"github.com/YelzhanWeb/waste-tracker/internal/app/wastelog"
	"github.com/YelzhanWeb/waste-tracker/internal/clock"
	"github.com/YelzhanWeb/waste-tracker/internal/config"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// app holds the wired services for one command invocation.
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	repo     interfaces.EntryRepository
	mqConn   rabbitmq.Connection
	wasteLog *wastelog.Service
	exporter *export.Service
	closers  []func()
}

func newApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lgr := logger.New("waste-tracker", cfg.Logging.Level)
	a := &app{cfg: cfg, logger: lgr}

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repo = repo

	var publisher interfaces.EventPublisher
	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			// Entries are still recorded locally without the broker.
			lgr.Warn("rabbitmq_unavailable", "Event notifications disabled", "startup", map[string]interface{}{
				"host":  cfg.RabbitMQ.Host,
				"error": err.Error(),
			})
		} else {
			a.mqConn = conn
			a.closers = append(a.closers, func() { _ = conn.Close() })
			publisher = rabbitmq.NewPublisher(conn, cfg.RabbitMQ.Exchange)
			lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
				"host":     cfg.RabbitMQ.Host,
				"exchange": cfg.RabbitMQ.Exchange,
			})
		}
	}

	exportPath := cfg.Storage.ExportPath()
	a.wasteLog = wastelog.NewService(repo, publisher, clock.RealClock{}, lgr)
	a.exporter = export.NewService(repo, tabular.ForPath(exportPath), exportPath, lgr)

	return a, nil
}

func (a *app) openRepository(ctx context.Context) (interfaces.EntryRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to prepare schema: %w", err)
		}
		a.logger.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": a.cfg.Database.Host,
			"db":   a.cfg.Database.Database,
		})
		return postgres.NewEntryRepository(db), nil

	default:
		path := a.cfg.Storage.LogPath()
		a.logger.Debug("store_opened", "Using JSONL log", "startup", map[string]interface{}{
			"path": path,
		})
		return jsonl.NewStore(path, a.cfg.Storage.SyncOnWrite, a.logger), nil
	}
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
