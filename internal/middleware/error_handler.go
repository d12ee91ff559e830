package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/anyulbade/merchant-dashboard-api/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError turns a service or database error into a status and body.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()}
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Details: err.Error()}
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: "forbidden", Details: err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, ErrorResponse{Error: "resource already exists", Details: err.Error()}
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, ErrorResponse{Error: "store data is temporarily unavailable"}
	}
	return MapDBError(err)
}

func MapDBError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		case "22P02": // invalid_text_representation
			return http.StatusBadRequest, ErrorResponse{Error: "malformed identifier"}
		}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

// ErrorHandler renders the last error a handler attached with c.Error,
// unless the handler already wrote a response. Server-side failures are
// logged with the request's logger.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, resp := MapError(err)
		if status >= http.StatusInternalServerError {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).
				Str("route", c.FullPath()).
				Msg(resp.Error)
		}
		c.JSON(status, resp)
	}
}
