package rest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/api"
)

// Ask a grounded question
// (POST /ask)
func (a *Adapter) Ask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
	defer cancel()

	apiRequest := api.AskRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if apiRequest.Question == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing question"))
		return
	}

	params := ragproxy.AskParams{
		StoreID:     apiRequest.StoreID,
		Temperature: apiRequest.Temperature,
	}
	if apiRequest.MaxChunks != nil {
		params.MaxChunks = *apiRequest.MaxChunks
	}

	result, err := a.ragProxy.Ask(ctx, apiRequest.Question, params)
	if err != nil {
		if errors.Is(err, ragproxy.ErrNoContent) {
			renderJSONError(w, http.StatusBadGateway, fmt.Errorf("no content in response"))
			return
		}
		log.Printf("error generating answer: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error generating answer: %w", err))
		return
	}

	renderJSON(w, mapAskResult(result))
}

func mapAskResult(result *ragproxy.AskResult) api.AskResponse {
	apiResponse := api.AskResponse{
		Answer:    result.Answer,
		Citations: make([]api.Citation, 0, len(result.Citations)),
	}
	for _, citation := range result.Citations {
		apiResponse.Citations = append(apiResponse.Citations, api.Citation{
			ID:                  api.OptString(citation.ID),
			Title:               api.OptString(citation.Title),
			URI:                 api.OptString(citation.URI),
			Snippet:             api.OptString(citation.Snippet),
			ChunkReference:      api.OptString(citation.ChunkReference),
			DocumentPath:        api.OptString(citation.DocumentPath),
			DocumentDisplayName: api.OptString(citation.DocumentDisplayName),
			DocumentURI:         api.OptString(citation.DocumentURI),
			DocumentError:       api.OptString(citation.DocumentError),
		})
	}
	return apiResponse
}
