package ragproxy

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDocument(t *testing.T) {
	t.Parallel()

	// Counters arrive as json.Number when decoded with UseNumber and pass
	// through as their string form.
	raw := map[string]any{
		"name":        "fileSearchStores/abc/documents/doc-1",
		"displayName": "handbook.pdf",
		"state":       "STATE_ACTIVE",
		"sizeBytes":   json.Number("1048576"),
		"chunkCount":  json.Number("42"),
		"createTime":  "2026-08-01T10:00:00Z",
	}

	assert.Equal(t, Document{
		Name:        "fileSearchStores/abc/documents/doc-1",
		DisplayName: "handbook.pdf",
		State:       "STATE_ACTIVE",
		SizeBytes:   "1048576",
		ChunkCount:  "42",
		CreateTime:  "2026-08-01T10:00:00Z",
	}, NormalizeDocument(raw))
}

func TestListDocuments(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		documents: []RawValue{
			map[string]any{"name": "fileSearchStores/abc/documents/b", "state": "STATE_ACTIVE"},
			map[string]any{"name": "fileSearchStores/abc/documents/a", "state": "STATE_PENDING"},
		},
	}
	rp := New(backend, new(fakeStorage))

	documents, err := rp.ListDocuments(context.Background(), "fileSearchStores/abc", SortParams{By: "name"})
	require.NoError(t, err)
	require.Len(t, documents, 2)

	assert.Equal(t, "fileSearchStores/abc/documents/a", documents[0].Name)
	assert.Equal(t, "fileSearchStores/abc/documents/b", documents[1].Name)
}

func TestListDocumentsFallsBackToEnsuredStore(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		stores:    []RawValue{map[string]any{"name": "fileSearchStores/first"}},
		documents: []RawValue{map[string]any{"name": "fileSearchStores/first/documents/doc-1"}},
	}
	rp := New(backend, new(fakeStorage))

	documents, err := rp.ListDocuments(context.Background(), "", SortParams{})
	require.NoError(t, err)

	require.Len(t, documents, 1)
	assert.Equal(t, "fileSearchStores/first/documents/doc-1", documents[0].Name)
}

func TestListDocumentsInvalidSortParams(t *testing.T) {
	t.Parallel()

	rp := New(new(fakeBackend), new(fakeStorage))

	_, err := rp.ListDocuments(context.Background(), "fileSearchStores/abc", SortParams{Limit: -1})
	assert.Error(t, err)
}
