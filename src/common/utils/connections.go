package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func RabbitURL(cfg *config.Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
}

func NewRabbitConnection(cfg *config.Config) (*amqp.Connection, *amqp.Channel, error) {
	amqpConfig := amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	}

	connection, err := amqp.DialConfig(RabbitURL(cfg), amqpConfig)
	if err != nil {
		return nil, nil, err
	}
	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, nil, err
	}

	return connection, channel, nil
}

func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		// default to the redis service in the cluster
		addr = "redis:6379"
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}

func PostgresDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
	)
}

func NewPostgresConnection(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, PostgresDSN(cfg))
}
