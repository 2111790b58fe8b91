package surfacenav

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/surface-nav/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func buildErrorPayload(msg string) []byte {
	b, _ := json.Marshal(errorResponse{Error: msg})
	return b
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var qe *QueryError
	switch {
	case errors.As(err, &qe):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	}
	writeStatus(w, status, err.Error())
}

func writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(msg))
}
