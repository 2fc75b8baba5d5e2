package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vovakirdan/tui-snake/internal/spectator"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// badRequest marks an error caused by the client's input.
type badRequest struct {
	msg string
}

func (e badRequest) Error() string {
	return e.msg
}

var errRoute = errors.New("route not found")

func invalid(msg string) error {
	return badRequest{msg: msg}
}

// writeError maps err to a status code and writes it as JSON. Internal
// errors are not echoed to the client.
func writeError(w http.ResponseWriter, err error) {
	var br badRequest
	switch {
	case errors.As(err, &br):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: br.msg})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, spectator.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "player not found"})
	case errors.Is(err, errRoute):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
