package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/store"
)

// jsonResponse writes a JSON response with the given status code. The body
// is encoded before the header is sent, so an unencodable value becomes a 500.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			slog.Error("encoding response", "error", err)
			status = http.StatusInternalServerError
			body = []byte(`{"error":"failed to encode response"}`)
		}
		body = append(body, '\n')
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps a repository error to a response. action describes the
// failed operation for logs and the generic 500 message.
func storeError(w http.ResponseWriter, action string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not found")
	case errors.Is(err, docstore.ErrCorruptDocument):
		slog.Error("document is corrupt", "action", action, "error", err)
		jsonError(w, http.StatusInternalServerError, "document is corrupt")
	case errors.Is(err, docstore.ErrPersistFailed):
		slog.Error("failed to persist changes", "action", action, "error", err)
		jsonError(w, http.StatusServiceUnavailable, "failed to save changes")
	default:
		slog.Error("failed to "+action, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// textOrNumber accepts either a JSON string or a JSON number and keeps its
// literal text, so numeric fields reach validation exactly as entered.
type textOrNumber string

func (s *textOrNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = textOrNumber(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = textOrNumber(n)
	return nil
}
