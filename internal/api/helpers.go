package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const errInternalText = "Internal error"

type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, "api error", "error", err, "code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{Message: msg, Error: err.Error()})
	if err != nil {
		slog.ErrorContext(ctx, "api error", "error", err, "code", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "")
		return
	}
}

// SendServiceErr maps a service error onto its HTTP status. msg is used for
// errors without a more specific meaning.
func SendServiceErr(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entity.ErrIncorrectRequestBody):
		SendErr(ctx, w, http.StatusBadRequest, err, "Incorrect request")
	case errors.Is(err, entity.ErrUnsupportedFile):
		SendErr(ctx, w, http.StatusBadRequest, err, "Unsupported file type")
	case errors.Is(err, entity.ErrConfirmationRequired):
		SendErr(ctx, w, http.StatusBadRequest, err, "Confirmation required")
	case errors.Is(err, entity.ErrNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, "Not found")
	case errors.Is(err, entity.ErrAlreadyExists):
		SendErr(ctx, w, http.StatusConflict, err, "Already exists")
	case errors.Is(err, entity.ErrAssistantBusy):
		SendErr(ctx, w, http.StatusConflict, err, "The assistant is still answering")
	case errors.Is(err, entity.ErrUnauthenticated):
		SendErr(ctx, w, http.StatusUnauthorized, err, "Unauthenticated")
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, msg)
	}
}

func sendFile(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))

	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}
