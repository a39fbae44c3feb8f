package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/micropost-server/internal/model"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError translates repository outcomes to transport status:
// not-found 404, conflict 409, validation failure 400, everything
// else, storage failures included, 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorBody{Code: "NOT_FOUND", Message: "resource not found"}})
	case errors.Is(err, model.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{Code: "CONFLICT", Message: model.ErrConflict.Error()}})
	case model.IsValidation(err):
		var ve *model.ValidationError
		errors.As(err, &ve)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Code: "VALIDATION_ERROR", Message: ve.Error()}})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Code: "VALIDATION_ERROR", Message: message}})
}
