package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/dataset"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DataClient stores session datasets in redis as binary tables.
type DataClient struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewDataClient(rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *DataClient {
	return &DataClient{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (dc *DataClient) Ping(ctx context.Context) error {
	return dc.rdb.Ping(ctx).Err()
}

func (dc *DataClient) Save(ctx context.Context, sessionID string, ds types.Dataset) error {
	blob, err := dataset.EncodeTable(ds)
	if err != nil {
		return fmt.Errorf("encode session dataset: %w", err)
	}

	if err := dc.rdb.Set(ctx, sessionKey(sessionID), blob, dc.ttl).Err(); err != nil {
		dc.logger.Errorw("failed to store session dataset", "session", sessionID, "error", err)
		return err
	}

	dc.logger.Debugw("stored session dataset", "session", sessionID, "rows", ds.Len(), "bytes", len(blob))
	return nil
}

func (dc *DataClient) Load(ctx context.Context, sessionID string) (types.Dataset, error) {
	blob, err := dc.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Dataset{}, ErrSessionNotFound
	}
	if err != nil {
		return types.Dataset{}, err
	}

	ds, err := dataset.DecodeTable(blob)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("decode session dataset: %w", err)
	}

	// sliding expiry while the dashboard is in use
	if err := dc.rdb.Expire(ctx, sessionKey(sessionID), dc.ttl).Err(); err != nil {
		dc.logger.Warnw("failed to refresh session ttl", "session", sessionID, "error", err)
	}

	return ds, nil
}

func (dc *DataClient) Delete(ctx context.Context, sessionID string) error {
	return dc.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
