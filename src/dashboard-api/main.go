package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jack-barr3tt/gbr-priority/src/common/config"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
	"github.com/jack-barr3tt/gbr-priority/src/dashboard-api/api"
)

func main() {
	cfg, errs := config.Load(os.Getenv("CONFIG_FILE"))

	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	utils.InitLogger(level)
	defer utils.SyncLogger()
	log := utils.GetLogger()

	if len(errs) > 0 {
		for _, err := range errs {
			log.Errorw("invalid configuration", "error", err)
		}
		log.Fatalw("refusing to start with invalid configuration", "errors", len(errs))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := api.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to start dashboard api server", "error", err)
		return
	}
	defer server.Close()

	app := fiber.New(fiber.Config{
		AppName:   "gbr-priority",
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})

	app.Use(api.RequestLogger(log))
	app.Use(api.Recover(log))
	app.Use(cors.New(cors.Config{
		ExposeHeaders: api.SessionHeader,
	}))

	api.RegisterHandlers(app, server)

	go func() {
		<-ctx.Done()
		log.Infow("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Warnw("fiber shutdown failed", "error", err)
		}
	}()

	log.Infow("dashboard api listening", "port", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalw("fiber listen failed", "error", err)
	}
}
