package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/health", s.GetHealth)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	router.Post("/datasets", s.PostDataset)
	router.Post("/datasets/import", s.PostDatasetImport)
	router.Delete("/datasets", s.DeleteDataset)
	router.Get("/datasets/types", s.GetDatasetTypes)

	router.Get("/rankings", s.GetRankings)

	router.Get("/analytics/summary", s.GetSummary)
	router.Get("/analytics/histogram", s.GetHistogram)
	router.Get("/analytics/histogram.png", s.GetHistogramPNG)
	router.Get("/analytics/histogram.html", s.GetHistogramHTML)
}
