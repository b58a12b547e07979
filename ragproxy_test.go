package ragproxy

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
)

// fakeBackend is an in-memory FileSearch collaborator recording every call.
// Waiting uploads poll from concurrent goroutines, hence the lock.
type fakeBackend struct {
	mu sync.Mutex

	stores       []RawValue
	createdStore string
	createErr    error

	uploadOps   []RawValue
	uploadCalls int
	uploadErr   error

	pollResults []RawValue
	pollCalls   int
	pollErr     error

	metadata      map[string]RawValue
	metadataErr   map[string]error
	metadataCalls map[string]int

	answer       RawValue
	answerErr    error
	lastQuestion string
	lastParams   AskParams

	documents []RawValue
}

func (b *fakeBackend) CreateStore(ctx context.Context, displayName string) (string, error) {
	if b.createErr != nil {
		return "", b.createErr
	}
	if b.createdStore == "" {
		b.createdStore = "fileSearchStores/created"
	}
	return b.createdStore, nil
}

func (b *fakeBackend) ListStores(ctx context.Context) ([]RawValue, error) {
	return b.stores, nil
}

func (b *fakeBackend) GetStore(ctx context.Context, storeID string) (RawValue, error) {
	for _, store := range b.stores {
		if m, ok := store.(map[string]any); ok && m["name"] == storeID {
			return store, nil
		}
	}
	return nil, nil
}

func (b *fakeBackend) ListDocuments(ctx context.Context, storeID string) ([]RawValue, error) {
	return b.documents, nil
}

func (b *fakeBackend) UploadDocument(ctx context.Context, path, storeID, displayName string) (RawValue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	if b.uploadCalls >= len(b.uploadOps) {
		return nil, fmt.Errorf("unexpected upload of %s", path)
	}
	op := b.uploadOps[b.uploadCalls]
	b.uploadCalls++
	return op, nil
}

func (b *fakeBackend) PollOperation(ctx context.Context, operation RawValue) (RawValue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pollErr != nil {
		return nil, b.pollErr
	}
	if len(b.pollResults) == 0 {
		return operation, nil
	}
	idx := b.pollCalls
	if idx >= len(b.pollResults) {
		idx = len(b.pollResults) - 1
	}
	b.pollCalls++
	return b.pollResults[idx], nil
}

func (b *fakeBackend) DocumentMetadata(ctx context.Context, documentPath string) (RawValue, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.metadataCalls == nil {
		b.metadataCalls = map[string]int{}
	}
	b.metadataCalls[documentPath]++
	if err, ok := b.metadataErr[documentPath]; ok {
		return nil, err
	}
	return b.metadata[documentPath], nil
}

func (b *fakeBackend) GenerateAnswer(ctx context.Context, question string, params AskParams) (RawValue, error) {
	b.lastQuestion = question
	b.lastParams = params
	if b.answerErr != nil {
		return nil, b.answerErr
	}
	return b.answer, nil
}

// fakeStorage stages nothing and records what would have hit the disk.
type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *fakeStorage) Save(name string, data io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	location := filepath.Join("/tmp/staged", name)
	s.saved = append(s.saved, location)
	return location, nil
}

func (s *fakeStorage) Delete(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}
