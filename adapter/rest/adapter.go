package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/RichardKnop/ragproxy"
)

type RagProxy interface {
	CreateStore(ctx context.Context, displayName string) (ragproxy.Store, error)
	ListStores(ctx context.Context, params ragproxy.SortParams) ([]ragproxy.Store, error)
	GetStore(ctx context.Context, storeID string) (ragproxy.Store, error)
	ListDocuments(ctx context.Context, storeID string, params ragproxy.SortParams) ([]ragproxy.Document, error)
	UploadContents(ctx context.Context, files []ragproxy.FileUpload, storeID string, wait bool) ([]ragproxy.Operation, error)
	UploadURL(ctx context.Context, url, displayName, storeID string, wait bool) ([]ragproxy.Operation, error)
	OperationStatus(ctx context.Context, name string) (ragproxy.Operation, error)
	Ask(ctx context.Context, question string, params ragproxy.AskParams) (*ragproxy.AskResult, error)
}

type Adapter struct {
	ragProxy RagProxy
}

func New(ragProxy RagProxy) *Adapter {
	return &Adapter{
		ragProxy: ragProxy,
	}
}

const (
	defaultTimeout = 10 * time.Second
	askTimeout     = 60 * time.Second
	// TODO - implement an upload lifecycle so synchronous waits can move to
	// a background worker and this endpoint can return 202 with a pollable
	// operation resource instead of holding the connection.
	uploadTimeout = 300 * time.Second
)

func (a *Adapter) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.Status)
	mux.HandleFunc("GET /stores", a.ListStores)
	mux.HandleFunc("POST /stores", a.CreateStore)
	mux.HandleFunc("GET /stores/{id...}", a.GetStore)
	mux.HandleFunc("POST /upload", a.UploadFiles)
	mux.HandleFunc("POST /upload-url", a.UploadURL)
	mux.HandleFunc("GET /files", a.ListDocuments)
	mux.HandleFunc("GET /operation-status", a.OperationStatus)
	mux.HandleFunc("POST /ask", a.Ask)

	return mux
}
