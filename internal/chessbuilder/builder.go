package chessbuilder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/park285/chess-rules/internal/adapter/textpresenter"
	"github.com/park285/chess-rules/internal/archive"
	"github.com/park285/chess-rules/internal/config"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/session"
)

type Deps struct {
	Manager   *session.Manager
	Store     session.Store
	Archive   archive.Repository
	Formatter *textpresenter.Formatter

	closers []func() error
}

// Close releases the store and archive connections.
func (d *Deps) Close() error {
	var err error
	for i := len(d.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, d.closers[i]())
	}
	return err
}

// New wires the game store, the result archive and the message catalog.
// Redis and Postgres are used when their URLs are set; otherwise the
// in-process implementations are used.
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := &Deps{}

	// Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL,
			session.WithTTL(cfg.GameTTL()),
			session.WithMaxRetries(cfg.RedisMaxRetries),
			session.WithStoreLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		deps.Store = rs
		deps.closers = append(deps.closers, rs.Close)
		logger.Info("store_ready", zap.String("kind", "redis"), zap.Duration("ttl", cfg.GameTTL()))
	} else {
		deps.Store = session.NewMemoryStore()
		logger.Info("store_ready", zap.String("kind", "memory"))
	}

	// Archive
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		repo, err := archive.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			_ = deps.Close()
			return nil, fmt.Errorf("init archive: %w", err)
		}
		deps.closers = append(deps.closers, repo.Close)
		if cfg.ArchiveEnsureSchema {
			sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = repo.EnsureSchema(sctx)
			cancel()
			if err != nil {
				_ = deps.Close()
				return nil, fmt.Errorf("archive schema: %w", err)
			}
		}
		deps.Archive = repo
		logger.Info("archive_ready", zap.String("kind", "postgres"))
	} else {
		deps.Archive = archive.NewMemoryRepository()
		logger.Info("archive_ready", zap.String("kind", "memory"))
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("load messages: %w", err)
	}
	deps.Formatter = textpresenter.NewFormatter(cat)
	deps.Manager = session.NewManager(deps.Store,
		session.WithArchive(deps.Archive),
		session.WithLogger(logger),
	)
	return deps, nil
}
