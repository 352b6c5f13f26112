package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/garnizeh/employees/pkg/repository"
)

// errorMessage is the error body shape: {"info": "..."}.
type errorMessage struct {
	Info string `json:"info"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError is the boundary error classifier: a total mapping from error
// kind to (status, message). NotFound and validation failures are expected
// conditions and keep their message; anything else is surfaced as a generic
// 500 with the detail logged server-side only.
func writeError(w http.ResponseWriter, err error) {
	var nf *repository.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, errorMessage{Info: nf.Error()}, http.StatusNotFound)
		return
	}

	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, errorMessage{Info: ve.Error()}, http.StatusUnprocessableEntity)
		return
	}

	if errors.Is(err, repository.ErrIDMismatch) {
		writeJSON(w, errorMessage{Info: repository.ErrIDMismatch.Error()}, http.StatusBadRequest)
		return
	}

	logger.Error("unexpected error", slog.Any("err", err))
	writeJSON(w, errorMessage{Info: "Internal server error"}, http.StatusInternalServerError)
}
