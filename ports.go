package ragproxy

import (
	"context"
	"io"
)

// FileSearch is the hosted semantic-search backend. It is a black box: every
// RawValue it returns may be an SDK struct or a decoded JSON map, with
// camelCase or snake_case field names, depending on which API surface
// produced it.
type FileSearch interface {
	CreateStore(ctx context.Context, displayName string) (string, error)
	ListStores(ctx context.Context) ([]RawValue, error)
	GetStore(ctx context.Context, storeID string) (RawValue, error)
	ListDocuments(ctx context.Context, storeID string) ([]RawValue, error)

	// UploadDocument starts an asynchronous ingestion of a local file and
	// returns the operation handle.
	UploadDocument(ctx context.Context, path, storeID, displayName string) (RawValue, error)
	// PollOperation performs a single status check on an operation handle.
	PollOperation(ctx context.Context, operation RawValue) (RawValue, error)

	DocumentMetadata(ctx context.Context, documentPath string) (RawValue, error)
	GenerateAnswer(ctx context.Context, question string, params AskParams) (RawValue, error)
}

// FileStorage stages uploaded content on local disk until it has been handed
// to the backend.
type FileStorage interface {
	Save(name string, data io.Reader) (string, error)
	Delete(path string) error
}
