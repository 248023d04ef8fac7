package api

import (
	"context"

	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/jack-barr3tt/gbr-priority/src/common/data"
	"github.com/jack-barr3tt/gbr-priority/src/common/metrics"
	"github.com/jack-barr3tt/gbr-priority/src/common/notify"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type APIServer struct {
	Config    *config.Config
	Store     data.SessionStore
	DB        *pgxpool.Pool
	Publisher notify.Publisher
	Logger    *zap.SugaredLogger
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry

	closers []func()
}

// NewAPIServer wires a server around an existing store and publisher. DB is
// left nil, which disables table imports.
func NewAPIServer(cfg *config.Config, store data.SessionStore, publisher notify.Publisher, logger *zap.SugaredLogger) (*APIServer, error) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics()
	if err := m.Register(reg); err != nil {
		return nil, err
	}

	return &APIServer{
		Config:    cfg,
		Store:     store,
		Publisher: publisher,
		Logger:    logger,
		Metrics:   m,
		Registry:  reg,
	}, nil
}

// NewServer connects the backing services named in cfg.
func NewServer(ctx context.Context, cfg *config.Config) (*APIServer, error) {
	logger := utils.GetLogger()
	var closers []func()
	fail := func(err error) (*APIServer, error) {
		for _, c := range closers {
			c()
		}
		return nil, err
	}

	var store data.SessionStore
	if cfg.RedisAddr != "" {
		rdb := utils.NewRedisClient(cfg.RedisAddr)
		closers = append(closers, func() { _ = rdb.Close() })

		client := data.NewDataClient(rdb, cfg.SessionTTL, logger)
		if err := client.Ping(ctx); err != nil {
			logger.Errorw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			return fail(err)
		}
		store = client
	} else {
		logger.Infow("REDIS_ADDR not set, keeping sessions in memory")
		store = data.NewMemoryStore(cfg.SessionTTL)
	}

	var db *pgxpool.Pool
	if cfg.PostgresEnabled() {
		pool, err := utils.NewPostgresConnection(ctx, cfg)
		if err != nil {
			logger.Errorw("failed to connect to database", "error", err)
			return fail(err)
		}
		closers = append(closers, pool.Close)
		db = pool
	}

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.MQEnabled() {
		conn, channel, err := utils.NewRabbitConnection(cfg)
		if err != nil {
			logger.Errorw("failed to connect to RabbitMQ", "error", err)
			return fail(err)
		}
		closers = append(closers, func() { _ = conn.Close() })

		pub, err := notify.NewRabbitPublisher(channel, cfg.MQQueue, logger)
		if err != nil {
			logger.Errorw("failed to declare ranking queue", "queue", cfg.MQQueue, "error", err)
			return fail(err)
		}
		publisher = pub
	}

	s, err := NewAPIServer(cfg, store, publisher, logger)
	if err != nil {
		return fail(err)
	}
	s.DB = db
	s.closers = closers
	return s, nil
}

// Close releases the connections opened by NewServer.
func (s *APIServer) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
