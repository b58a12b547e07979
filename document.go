package ragproxy

import (
	"context"
	"fmt"

	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// Document is the canonical record of one ingested document as the backend
// reports it. Size and chunk count stay strings; the backend serialises
// 64-bit counters that way and we pass them through untouched.
type Document struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
	SizeBytes   string `json:"size_bytes"`
	ChunkCount  string `json:"chunk_count"`
	CreateTime  string `json:"create_time"`
	UpdateTime  string `json:"update_time"`
}

var documentSortableBy = []string{"name", "display_name", "state", "create_time", "update_time"}

// NormalizeDocument flattens a raw document value regardless of its shape.
func NormalizeDocument(raw RawValue) Document {
	return Document{
		Name:        fields.String(fields.Resolve(raw, "name")),
		DisplayName: fields.String(fields.Resolve(raw, "display_name", "displayName")),
		State:       fields.String(fields.Resolve(raw, "state")),
		SizeBytes:   fields.String(fields.Resolve(raw, "size_bytes", "sizeBytes")),
		ChunkCount:  fields.String(fields.Resolve(raw, "chunk_count", "chunkCount")),
		CreateTime:  fields.String(fields.Resolve(raw, "create_time", "createTime")),
		UpdateTime:  fields.String(fields.Resolve(raw, "update_time", "updateTime")),
	}
}

func (rp *ragProxy) ListDocuments(ctx context.Context, storeID string, params SortParams) ([]Document, error) {
	if !params.Valid(documentSortableBy) {
		return nil, fmt.Errorf("invalid sort params: %v", params)
	}

	if storeID == "" {
		var err error
		storeID, err = rp.EnsureStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("ensuring store: %w", err)
		}
	}

	raws, err := rp.backend.ListDocuments(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	documents := make([]Document, 0, len(raws))
	for _, raw := range raws {
		documents = append(documents, NormalizeDocument(raw))
	}

	return applySort(documents, params, documentSortKey(params.By)), nil
}

func documentSortKey(by string) func(Document) string {
	switch by {
	case "display_name":
		return func(d Document) string { return d.DisplayName }
	case "state":
		return func(d Document) string { return d.State }
	case "create_time":
		return func(d Document) string { return d.CreateTime }
	case "update_time":
		return func(d Document) string { return d.UpdateTime }
	default:
		return func(d Document) string { return d.Name }
	}
}
