package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jack-barr3tt/gbr-priority/src/common/metrics"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
	"github.com/jack-barr3tt/gbr-priority/src/common/utils"
)

// GetRankings filters and ranks the session dataset.
//
// Query parameters:
//   - types: comma separated train types; absent means every type
//   - min_urgency: urgency floor between 0 and the configured maximum
func (s *APIServer) GetRankings(c *fiber.Ctx) error {
	ds, err := s.loadSession(c)
	if err != nil {
		s.Metrics.IncRankingRequests(metrics.StatusFailure)
		return s.fail(c, "Failed to load dataset", err)
	}

	hasTypes := c.Context().QueryArgs().Has("types")
	allowed := utils.ParseTypeList(c.Query("types"), hasTypes)

	floor, err := utils.ParseFloatParam("min_urgency", c.Query("min_urgency"), 0, s.Config.MaxUrgencyFloor)
	if err != nil {
		s.Metrics.IncRankingRequests(metrics.StatusFailure)
		return badRequest(c, "Invalid min_urgency", err)
	}

	view, err := ranking.Prepare(ds, ranking.ViewOptions{
		Filter:        ranking.FilterOptions{Types: allowed, MinUrgency: floor},
		PreviewRows:   s.Config.PreviewRows,
		HighlightRows: s.Config.HighlightRows,
	})
	if err != nil {
		s.Metrics.IncRankingRequests(metrics.StatusFailure)
		return s.fail(c, "Failed to rank trains", err)
	}

	table, err := ranking.Project(view.Ranked, types.TableColumns...)
	if err != nil {
		s.Metrics.IncRankingRequests(metrics.StatusFailure)
		return s.fail(c, "Dataset is missing train table columns", err)
	}

	s.Metrics.IncRankingRequests(metrics.StatusSuccess)
	return c.JSON(RankingResponse{
		Types:        view.Types,
		UnknownTypes: view.UnknownTypes,
		Total:        view.Ranked.Len(),
		Columns:      table.Columns,
		Rows:         rows(table),
		Preview:      rows(view.Preview),
		Highlight:    rows(view.Highlight),
		Headlines:    ranking.Headlines(view.Highlight),
	})
}
