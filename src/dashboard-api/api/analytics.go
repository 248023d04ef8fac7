package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/gbr-priority/src/common/charts"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
)

const (
	histogramTitle = "Urgency Score Distribution"

	maxHistogramBins = 100
)

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// GetSummary reports the headline statistics of the whole session dataset.
func (s *APIServer) GetSummary(c *fiber.Ctx) error {
	ds, err := s.loadSession(c)
	if err != nil {
		return s.fail(c, "Failed to load dataset", err)
	}

	summary, err := ranking.Summarize(ds)
	if err != nil {
		return s.fail(c, "Failed to summarize dataset", err)
	}

	return c.JSON(SummaryResponse{
		MaxUrgency:      round2(summary.MaxUrgency),
		MinUrgency:      round2(summary.MinUrgency),
		AvgDurationMins: summary.MeanDuration,
		TotalTrains:     summary.TotalCount,
	})
}

func (s *APIServer) histogram(c *fiber.Ctx) (ranking.Histogram, error) {
	ds, err := s.loadSession(c)
	if err != nil {
		return ranking.Histogram{}, err
	}

	bins, err := utils.ParseIntParam("bins", c.Query("bins"), s.Config.HistogramBins)
	if err == nil && (bins == 0 || bins > maxHistogramBins) {
		err = fmt.Errorf("bins must be between 1 and %d, got %d", maxHistogramBins, bins)
	}
	if err != nil {
		return ranking.Histogram{}, fmt.Errorf("%w: %w", errInvalidParam, err)
	}
	return ranking.UrgencyHistogram(ds, bins)
}

func (s *APIServer) GetHistogram(c *fiber.Ctx) error {
	hist, err := s.histogram(c)
	if err != nil {
		return s.fail(c, "Failed to build urgency histogram", err)
	}

	resp := HistogramResponse{Column: hist.Column, Bins: make([]HistogramBin, len(hist.Bins))}
	for i, b := range hist.Bins {
		resp.Bins[i] = HistogramBin{Lower: b.Lower, Upper: b.Upper, Count: b.Count}
	}
	return c.JSON(resp)
}

func (s *APIServer) GetHistogramPNG(c *fiber.Ctx) error {
	hist, err := s.histogram(c)
	if err != nil {
		return s.fail(c, "Failed to build urgency histogram", err)
	}

	var buf bytes.Buffer
	if err := charts.HistogramPNG(&buf, hist, histogramTitle); err != nil {
		return s.fail(c, "Failed to render histogram", err)
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

func (s *APIServer) GetHistogramHTML(c *fiber.Ctx) error {
	hist, err := s.histogram(c)
	if err != nil {
		return s.fail(c, "Failed to build urgency histogram", err)
	}

	var buf bytes.Buffer
	if err := charts.HistogramHTML(&buf, hist, histogramTitle); err != nil {
		return s.fail(c, "Failed to render histogram", err)
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}
