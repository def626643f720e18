package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"clozedrill/internal/content"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondContentError maps a content loading failure to a bad-gateway style
// response; the content directory is an external document boundary.
func respondContentError(w http.ResponseWriter, err error) {
	var loadErr *content.LoadError
	if errors.As(err, &loadErr) {
		respondWithError(w, http.StatusBadGateway, "Exercise content is unavailable", "Content load failed", err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Internal server error", "", err)
}

// decodeBody decodes a JSON request body, responding with a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return false
	}
	return true
}
