package rest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/RichardKnop/ragproxy/api"
)

// renderJSON writes the value as the JSON body of the response.
func renderJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func renderJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

// readRequestJSON decodes the request body into v, enforcing a JSON
// content type.
func readRequestJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("invalid content type: %w", err)
	}
	if mediaType != "application/json" {
		return fmt.Errorf("expected application/json content type, got %s", mediaType)
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}

	return nil
}
