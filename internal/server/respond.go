package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huangsam/reportboard/core"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondErr reports err with the status it maps to. Rejected imports also
// list every offending row.
func respondErr(w http.ResponseWriter, err error) {
	var importErr *core.ImportError
	if errors.As(err, &importErr) {
		respondJSON(w, statusFor(err), map[string]any{
			"error":  err.Error(),
			"issues": importErr.Issues,
		})
		return
	}
	respondError(w, statusFor(err), err.Error())
}

// respondFile writes a download with the given name and type.
func respondFile(w http.ResponseWriter, name, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
