package middleware

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/project-budget-service/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapStorageError translates repository-layer failures from either
// backend into an HTTP status and body.
func MapStorageError(err error) (int, ErrorResponse) {
	if errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "project not found"}
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
		case "22P02": // invalid_text_representation, e.g. bad uuid
			return http.StatusNotFound, ErrorResponse{Error: "project not found"}
		}
	}

	log.Error().Err(err).Msg("unhandled storage error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}
