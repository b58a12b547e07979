package rest

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/api"
)

const (
	megabyte      = 1 << 20
	maxUploadSize = 20 * megabyte
)

// Upload one or more documents into a store
// (POST /upload)
func (a *Adapter) UploadFiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	// Anything over the in-memory limit spills to a temporary file; the
	// body reader errors with io.MaxBytesError past the hard cap.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("error parsing multipart form: %w", err))
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	files := make([]ragproxy.FileUpload, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error reading file from request: %w", err))
			return
		}
		defer file.Close()

		name := header.Filename
		if name == "" {
			name = "document"
		}
		files = append(files, ragproxy.FileUpload{Name: name, Contents: file})
	}

	operations, err := a.ragProxy.UploadContents(ctx, files,
		r.URL.Query().Get("store_id"), boolQueryParam(r, "wait"))
	if err != nil {
		log.Printf("error uploading files: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error uploading files: %w", err))
		return
	}

	renderJSON(w, mapOperations(operations))
}

// Ingest a document from a remote URL
// (POST /upload-url)
func (a *Adapter) UploadURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	apiRequest := api.UploadURLRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if apiRequest.URL == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing url"))
		return
	}

	operations, err := a.ragProxy.UploadURL(ctx, apiRequest.URL, apiRequest.DisplayName,
		r.URL.Query().Get("store_id"), boolQueryParam(r, "wait"))
	if err != nil {
		log.Printf("error uploading from url: %v", err)
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("error uploading from url: %w", err))
		return
	}

	renderJSON(w, mapOperations(operations))
}

// Check the status of an ingestion operation
// (GET /operation-status)
func (a *Adapter) OperationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
	defer cancel()

	name := r.URL.Query().Get("name")
	if name == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing operation name"))
		return
	}

	operation, err := a.ragProxy.OperationStatus(ctx, name)
	if err != nil {
		log.Printf("error fetching operation status: %v", err)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error fetching operation status: %w", err))
		return
	}

	renderJSON(w, api.OperationStatus{
		Done:         operation.Done,
		Error:        api.OptString(operation.Error),
		DocumentName: api.OptString(operation.DocumentName),
		DisplayName:  api.OptString(operation.DisplayName),
		Store:        api.OptString(operation.Store),
	})
}

func mapOperation(operation ragproxy.Operation) api.Operation {
	return api.Operation{
		Operation:    operation.Name,
		DocumentName: api.OptString(operation.DocumentName),
		DisplayName:  api.OptString(operation.DisplayName),
		Store:        api.OptString(operation.Store),
		Done:         operation.Done,
		Error:        api.OptString(operation.Error),
	}
}

func mapOperations(operations []ragproxy.Operation) api.Uploaded {
	apiResponse := api.Uploaded{
		Uploaded: make([]api.Operation, 0, len(operations)),
	}
	for _, operation := range operations {
		apiResponse.Uploaded = append(apiResponse.Uploaded, mapOperation(operation))
	}
	return apiResponse
}

func boolQueryParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
