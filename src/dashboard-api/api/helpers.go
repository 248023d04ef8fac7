package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jack-barr3tt/gbr-priority/src/common/data"
	"github.com/jack-barr3tt/gbr-priority/src/common/dataset"
	"github.com/jack-barr3tt/gbr-priority/src/common/ranking"
	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"

	uploadFirstMessage = "Please upload data first"
)

// errInvalidParam marks query parameter errors so fail can report them as 400.
var errInvalidParam = errors.New("invalid query parameter")

// requestSessionID returns the caller's session id, or "" when none or an
// invalid one was sent.
func requestSessionID(c *fiber.Ctx) string {
	id := c.Get(SessionHeader)
	if id == "" {
		id = c.Cookies(SessionCookie)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func (s *APIServer) setSession(c *fiber.Ctx, id string) {
	c.Set(SessionHeader, id)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Expires:  time.Now().Add(s.Config.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// loadSession fetches the caller's dataset, reporting data.ErrSessionNotFound
// when there is no session.
func (s *APIServer) loadSession(c *fiber.Ctx) (types.Dataset, error) {
	id := requestSessionID(c)
	if id == "" {
		return types.Dataset{}, data.ErrSessionNotFound
	}
	return s.Store.Load(c.UserContext(), id)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	resp := ErrorResponse{
		Error:   "Bad Request",
		Message: message,
	}
	if err != nil {
		errStr := err.Error()
		resp.Stack = &errStr
	}
	return c.Status(http.StatusBadRequest).JSON(resp)
}

// fail maps engine and storage errors onto HTTP responses.
func (s *APIServer) fail(c *fiber.Ctx, message string, err error) error {
	var schemaErr *ranking.SchemaError
	var dataErr *ranking.DataError
	errStr := err.Error()

	switch {
	case errors.Is(err, data.ErrSessionNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "No dataset",
			Message: uploadFirstMessage,
		})
	case errors.Is(err, errInvalidParam), errors.Is(err, dataset.ErrUnsupportedFormat), errors.Is(err, dataset.ErrNoHeader):
		return badRequest(c, message, err)
	case errors.Is(err, ranking.ErrEmptyDataset):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "Empty dataset",
			Message: message,
			Stack:   &errStr,
		})
	case errors.As(err, &schemaErr):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "Schema error",
			Message: message,
			Stack:   &errStr,
		})
	case errors.As(err, &dataErr):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "Data error",
			Message: message,
			Stack:   &errStr,
		})
	}

	s.Logger.Errorw(message, "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "Internal error",
		Message: message,
		Stack:   &errStr,
	})
}

// rows renders ds as JSON objects restricted to its columns.
func rows(ds types.Dataset) []Row {
	out := make([]Row, 0, ds.Len())
	for _, rec := range ds.Rows {
		row := make(Row, len(ds.Columns))
		for _, col := range ds.Columns {
			row[col] = rec[col]
		}
		out = append(out, row)
	}
	return out
}
