package rest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/api"
)

// Service status
// (GET /)
func (a *Adapter) Status(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, api.Status{Status: "ragproxy API ready"})
}

// List file search stores
// (GET /stores)
func (a *Adapter) ListStores(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	params, err := sortParamsFromRequest(r)
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	stores, err := a.ragProxy.ListStores(ctx, params)
	if err != nil {
		log.Printf("error listing stores: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing stores: %w", err))
		return
	}

	renderJSON(w, mapStores(stores))
}

// Create a new file search store
// (POST /stores)
func (a *Adapter) CreateStore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	apiRequest := api.CreateStoreRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	store, err := a.ragProxy.CreateStore(ctx, apiRequest.DisplayName)
	if err != nil {
		log.Printf("error creating store: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error creating store: %w", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	renderJSON(w, api.StoreEnvelope{Store: mapStore(store)})
}

// Get a single store by its resource name
// (GET /stores/{id...})
func (a *Adapter) GetStore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	store, err := a.ragProxy.GetStore(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ragproxy.ErrNotFound) {
			renderJSONError(w, http.StatusNotFound, fmt.Errorf("store not found"))
			return
		}
		log.Printf("error getting store: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error getting store: %w", err))
		return
	}

	renderJSON(w, api.StoreEnvelope{Store: mapStore(store)})
}

// List documents in a store
// (GET /files)
func (a *Adapter) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	params, err := sortParamsFromRequest(r)
	if err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	documents, err := a.ragProxy.ListDocuments(ctx, r.URL.Query().Get("store_id"), params)
	if err != nil {
		log.Printf("error listing documents: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error listing documents: %w", err))
		return
	}

	renderJSON(w, mapDocuments(documents))
}

func mapStore(store ragproxy.Store) api.Store {
	return api.Store{
		Name:        store.Name,
		DisplayName: store.DisplayName,
		CreateTime:  store.CreateTime,
		UpdateTime:  store.UpdateTime,
	}
}

func mapStores(stores []ragproxy.Store) api.Stores {
	apiResponse := api.Stores{
		Stores: make([]api.Store, 0, len(stores)),
	}
	for _, store := range stores {
		apiResponse.Stores = append(apiResponse.Stores, mapStore(store))
	}
	return apiResponse
}

func mapDocument(document ragproxy.Document) api.Document {
	return api.Document{
		Name:        document.Name,
		DisplayName: document.DisplayName,
		State:       document.State,
		SizeBytes:   document.SizeBytes,
		ChunkCount:  document.ChunkCount,
		CreateTime:  document.CreateTime,
		UpdateTime:  document.UpdateTime,
	}
}

func mapDocuments(documents []ragproxy.Document) api.Documents {
	apiResponse := api.Documents{
		Files: make([]api.Document, 0, len(documents)),
	}
	for _, document := range documents {
		apiResponse.Files = append(apiResponse.Files, mapDocument(document))
	}
	return apiResponse
}

const maxListLimit = 100

func sortParamsFromRequest(r *http.Request) (ragproxy.SortParams, error) {
	var (
		query  = r.URL.Query()
		params = ragproxy.SortParams{
			By:    query.Get("sort"),
			Order: ragproxy.SortOrder(query.Get("order")),
		}
	)

	if limit := query.Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			return ragproxy.SortParams{}, fmt.Errorf("invalid limit: %w", err)
		}
		if parsed > maxListLimit {
			return ragproxy.SortParams{}, fmt.Errorf("limit cannot be greater than %d", maxListLimit)
		}
		params.Limit = parsed
	}

	switch params.Order {
	case "", ragproxy.SortOrderAsc, ragproxy.SortOrderDesc:
	default:
		return ragproxy.SortParams{}, fmt.Errorf("invalid order: %s", params.Order)
	}

	return params, nil
}
