package handler

import (
	"encoding/json"
	"net/http"

	"storecounter/internal/apperror"
	"storecounter/internal/dto"
	"storecounter/internal/logger"
)

// writeJSON encodes data with the given status.
func writeJSON(w http.ResponseWriter, logger *logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// writeError answers with {"error": message, "code": ...}; the status is derived from err.
func writeError(w http.ResponseWriter, logger *logger.Logger, err error) {
	writeJSON(w, logger, apperror.HTTPStatus(err), dto.ErrorResponse{
		Error: err.Error(),
		Code:  apperror.Code(err),
	})
}

func writeBadRequest(w http.ResponseWriter, logger *logger.Logger, message string) {
	writeJSON(w, logger, http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
