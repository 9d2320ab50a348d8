package handlers

import (
	"errors"
	"net/http"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
)

// writeDomainError maps service errors onto HTTP statuses.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var pu *apperr.ProductUnavailableError
	switch {
	case errors.As(err, &pu):
		writeErrorBody(logger, w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Error:      "product unavailable",
			ProductIDs: pu.IDs,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(logger, w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, "broadcast not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, "no longer available")
	case errors.Is(err, apperr.ErrExpired):
		writeError(logger, w, r, http.StatusGone, "broadcast expired")
	case errors.Is(err, apperr.ErrNoneAvailable):
		writeError(logger, w, r, http.StatusConflict, "no delivery agent available")
	case errors.Is(err, apperr.ErrStoreUnavailable):
		logger.Error("store unavailable",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusServiceUnavailable, "service unavailable")
	default:
		logger.Error("internal error",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
