package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jack-barr3tt/gbr-priority/src/common/data"
	"github.com/jack-barr3tt/gbr-priority/src/common/dataset"
	"github.com/jack-barr3tt/gbr-priority/src/common/metrics"
	"github.com/jack-barr3tt/gbr-priority/src/common/notify"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

const (
	formatPostgres = "postgres"
	formatUnknown  = "unknown"

	publishTimeout = 5 * time.Second
)

// PostDataset accepts a multipart "file" upload (.csv or .cbor) and makes it
// the caller's session dataset.
func (s *APIServer) PostDataset(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		s.Metrics.IncUploads(formatUnknown, metrics.StatusFailure)
		return badRequest(c, "multipart form field \"file\" is required", err)
	}

	format, err := dataset.FormatOf(fh.Filename)
	if err != nil {
		s.Metrics.IncUploads(formatUnknown, metrics.StatusFailure)
		return badRequest(c, "Upload a CSV or binary table file", err)
	}

	f, err := fh.Open()
	if err != nil {
		s.Metrics.IncUploads(format, metrics.StatusFailure)
		return s.fail(c, "Failed to read upload", err)
	}
	defer f.Close()

	ds, err := dataset.Load(fh.Filename, f)
	if err != nil {
		s.Metrics.IncUploads(format, metrics.StatusFailure)
		return badRequest(c, "Failed to parse dataset", err)
	}

	return s.storeDataset(c, ds, format)
}

// PostDatasetImport loads a Postgres table as the caller's session dataset.
func (s *APIServer) PostDatasetImport(c *fiber.Ctx) error {
	if s.DB == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "Service Unavailable",
			Message: "No database is configured for imports",
		})
	}

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Request body must be JSON with a table name", err)
	}
	if strings.TrimSpace(req.Table) == "" {
		return badRequest(c, "table is required", nil)
	}

	ds, err := dataset.LoadPostgres(c.UserContext(), s.DB, req.Table)
	if err != nil {
		s.Metrics.IncUploads(formatPostgres, metrics.StatusFailure)
		return s.fail(c, "Failed to import table", err)
	}

	return s.storeDataset(c, ds, formatPostgres)
}

// DeleteDataset drops the caller's session dataset.
func (s *APIServer) DeleteDataset(c *fiber.Ctx) error {
	id := requestSessionID(c)
	if id == "" {
		return s.fail(c, uploadFirstMessage, data.ErrSessionNotFound)
	}
	if err := s.Store.Delete(c.UserContext(), id); err != nil {
		return s.fail(c, "Failed to delete dataset", err)
	}
	c.ClearCookie(SessionCookie)
	return c.SendStatus(http.StatusNoContent)
}

// GetDatasetTypes lists the distinct train types of the session dataset.
func (s *APIServer) GetDatasetTypes(c *fiber.Ctx) error {
	ds, err := s.loadSession(c)
	if err != nil {
		return s.fail(c, "Failed to load dataset", err)
	}
	if !ds.HasColumn(types.ColTrainType) {
		return s.fail(c, "Dataset has no train types", &ranking.SchemaError{Column: types.ColTrainType, Reason: "required column is missing"})
	}
	return c.JSON(TypesResponse{Types: ranking.DistinctTypes(ds)})
}

func (s *APIServer) storeDataset(c *fiber.Ctx, ds types.Dataset, format string) error {
	ds, err := ranking.Normalize(ds)
	if err != nil {
		s.Metrics.IncUploads(format, metrics.StatusFailure)
		return s.fail(c, "Dataset columns could not be normalized", err)
	}

	id := requestSessionID(c)
	if id == "" {
		id = uuid.NewString()
	}

	if err := s.Store.Save(c.UserContext(), id, ds); err != nil {
		s.Metrics.IncUploads(format, metrics.StatusFailure)
		return s.fail(c, "Failed to store dataset", err)
	}

	s.Metrics.IncUploads(format, metrics.StatusSuccess)
	s.Metrics.ObserveDatasetRows(ds.Len())
	s.Logger.Infow("dataset stored", "session", id, "format", format, "rows", ds.Len(), "columns", len(ds.Columns))

	s.publishHighlight(id, ds)
	s.setSession(c, id)

	return c.Status(http.StatusCreated).JSON(UploadResponse{
		SessionID: id,
		Rows:      ds.Len(),
		Columns:   ds.Columns,
		Preview:   rows(ranking.TopN(ds, s.Config.PreviewRows)),
	})
}

// publishHighlight announces the top ranked trains of a new dataset. Failures
// are logged only.
func (s *APIServer) publishHighlight(sessionID string, ds types.Dataset) {
	view, err := ranking.Prepare(ds, ranking.ViewOptions{
		PreviewRows:   s.Config.PreviewRows,
		HighlightRows: s.Config.HighlightRows,
	})
	if err != nil {
		s.Logger.Warnw("skipping ranking notification", "session", sessionID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.Publisher.PublishRanking(ctx, notify.NewSnapshot(sessionID, view, time.Now())); err != nil {
		s.Logger.Warnw("failed to publish ranking snapshot", "session", sessionID, "error", err)
	}
}
