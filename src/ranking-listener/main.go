package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/jack-barr3tt/gbr-priority/src/common/notify"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
	"github.com/jack-barr3tt/gbr-priority/src/ranking-listener/listener"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandleSnapshot logs the highlighted trains of a published ranking.
func HandleSnapshot(logger *zap.SugaredLogger) func([]byte) error {
	return func(body []byte) error {
		snap, err := notify.DecodeSnapshot(body)
		if err != nil {
			logger.Warnw("error unmarshalling ranking snapshot", "error", err)
			return err
		}

		logger.Infow("ranking published",
			"session", snap.SessionID,
			"trains", snap.TotalTrains,
			"types", snap.Types,
			"generated_at", snap.GeneratedAt,
		)
		for _, line := range snap.Headlines() {
			logger.Info(line)
		}
		return nil
	}
}

func main() {
	cfg, errs := config.Load(os.Getenv("CONFIG_FILE"))
	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	utils.InitLogger(level)
	defer utils.SyncLogger()
	logger := utils.GetLogger()

	if len(errs) > 0 {
		logger.Fatalw("invalid configuration", "errors", errs)
	}
	if !cfg.MQEnabled() {
		logger.Fatalw("MQ_HOST must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mqConn, channel, err := utils.NewRabbitConnection(cfg)
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer mqConn.Close()
	defer channel.Close()

	closeChan := make(chan *amqp.Error, 1)
	mqConn.NotifyClose(closeChan)

	go func() {
		select {
		case err := <-closeChan:
			if err != nil {
				logger.Warnw("RabbitMQ connection closed", "error", err)
			}
			stop()
		case <-ctx.Done():
			return
		}
	}()

	if _, err := channel.QueueDeclare(cfg.MQQueue, false, false, false, false, nil); err != nil {
		logger.Fatalw("failed to declare queue", "queue", cfg.MQQueue, "error", err)
	}

	var wg sync.WaitGroup
	rankingListener := listener.NewListener(ctx, &wg, channel, cfg.MQQueue, "ranking-listener", HandleSnapshot(logger))

	wg.Add(1)
	go func() {
		if err := rankingListener.Start(); err != nil {
			logger.Errorw("ranking listener stopped", "error", err)
			stop()
		}
	}()

	logger.Infow("listening for rankings", "queue", cfg.MQQueue)
	<-ctx.Done()
	stop()

	wg.Wait()
}
