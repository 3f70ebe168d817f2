package handlers

import (
	"encoding/json"
	"net/http"

	"tukerank-backend/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps err onto its status. 500s carry the underlying error text.
func writeError(w http.ResponseWriter, err error) {
	e := apperr.As(err)
	msg := e.Message
	if e.HTTPStatus() == http.StatusInternalServerError {
		msg = err.Error()
	}
	writeJSON(w, e.HTTPStatus(), map[string]string{"error": msg})
}
