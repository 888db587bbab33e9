package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"blogly/configs"
	"blogly/internal/shared/clock"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	"gorm.io/plugin/opentelemetry/tracing"
)

type Store struct{ Base *gorm.DB }

type Option func(*options)

type options struct {
	clock    clock.Clock
	attempts int
	sleep    time.Duration
}

// WithClock sets the time source used for created_at and other
// auto-managed timestamps.
func WithClock(c clock.Clock) Option { return func(o *options) { o.clock = c } }

func WithRetry(attempts int, sleep time.Duration) Option {
	return func(o *options) {
		o.attempts = attempts
		o.sleep = sleep
	}
}

func Open(cfg *configs.Config, opts ...Option) (*Store, error) {
	o := options{clock: clock.System{}, attempts: 8, sleep: time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	if o.attempts < 1 {
		o.attempts = 1
	}

	base, err := openWithRetry(cfg.DSN(), func() *gorm.Config {
		return &gorm.Config{
			Logger: newLogger(cfg.LogLevel),
			// Postgres keeps microseconds; stamping at the same precision
			// keeps in-memory and reloaded values equal.
			NowFunc: func() time.Time { return o.clock.Now().UTC().Truncate(time.Microsecond) },
		}
	}, o.attempts, o.sleep)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	sqlDB, err := base.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if len(cfg.ReplicaDSNs) > 0 {
		var replicas []gorm.Dialector
		for _, r := range cfg.ReplicaDSNs {
			replicas = append(replicas, postgres.Open(r))
		}
		if err := base.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("dbresolver: %w", err)
		}
	}

	if cfg.OTLPEndpoint != "" {
		if err := base.Use(tracing.NewPlugin()); err != nil {
			return nil, fmt.Errorf("db tracing: %w", err)
		}
	}

	return &Store{Base: base}, nil
}

// OpenFromEnv opens a store on configs.LoadConfig. The config is returned
// even when opening fails so callers can read the rest of it.
func OpenFromEnv(opts ...Option) (*Store, *configs.Config, error) {
	cfg := configs.LoadConfig()
	s, err := Open(cfg, opts...)
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}

// Read routes to a replica when replicas are configured. Inside a
// transaction it stays on the transaction's connection.
func (s *Store) Read(ctx context.Context) *gorm.DB {
	return s.Base.WithContext(ctx).Clauses(dbresolver.Read)
}

func (s *Store) Write(ctx context.Context) *gorm.DB {
	return s.Base.WithContext(ctx).Clauses(dbresolver.Write)
}

// Transaction runs fn as one unit of work. Any error returned by fn rolls
// the whole unit back and is returned unchanged.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.Base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{Base: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.Base.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openWithRetry(dsn string, newConfig func() *gorm.Config, attempts int, sleep time.Duration) (*gorm.DB, error) {
	var last error
	for i := 1; i <= attempts; i++ {
		g, err := gorm.Open(postgres.Open(dsn), newConfig())
		if err == nil {
			sqlDB, err2 := g.DB()
			if err2 == nil {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				pingErr := sqlDB.PingContext(ctx)
				cancel()
				if pingErr == nil {
					return g, nil
				}
				_ = sqlDB.Close()
				last = pingErr
			} else {
				last = err2
			}
		} else {
			last = err
		}

		if i == attempts {
			break
		}
		log.Printf("db open attempt %d/%d failed: %v", i, attempts, last)
		time.Sleep(sleep)
		if sleep < 8*time.Second {
			sleep *= 2
		}
	}
	return nil, last
}

func newLogger(level string) logger.Interface {
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func logLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
