package ragproxy

import (
	"context"
	"fmt"
	"log"

	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// Store is the canonical record of a backend file search store.
type Store struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	CreateTime  string `json:"create_time"`
	UpdateTime  string `json:"update_time"`
}

var storeSortableBy = []string{"name", "display_name", "create_time", "update_time"}

// NormalizeStore flattens a raw store value regardless of its shape.
func NormalizeStore(raw RawValue) Store {
	return Store{
		Name:        fields.String(fields.Resolve(raw, "name")),
		DisplayName: fields.String(fields.Resolve(raw, "display_name", "displayName")),
		CreateTime:  fields.String(fields.Resolve(raw, "create_time", "createTime")),
		UpdateTime:  fields.String(fields.Resolve(raw, "update_time", "updateTime")),
	}
}

func (rp *ragProxy) CreateStore(ctx context.Context, displayName string) (Store, error) {
	if displayName == "" {
		displayName = defaultStoreDisplayName
	}

	storeID, err := rp.backend.CreateStore(ctx, displayName)
	if err != nil {
		return Store{}, fmt.Errorf("creating store: %w", err)
	}

	log.Printf("created store: %s", storeID)

	// The create call only hands back an id; fetch the full record but fall
	// back to what we know if the read-after-write misses.
	raw, err := rp.backend.GetStore(ctx, storeID)
	if err != nil || raw == nil {
		return Store{Name: storeID, DisplayName: displayName}, nil
	}

	return NormalizeStore(raw), nil
}

func (rp *ragProxy) ListStores(ctx context.Context, params SortParams) ([]Store, error) {
	if !params.Valid(storeSortableBy) {
		return nil, fmt.Errorf("invalid sort params: %v", params)
	}

	raws, err := rp.backend.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}

	stores := make([]Store, 0, len(raws))
	for _, raw := range raws {
		stores = append(stores, NormalizeStore(raw))
	}

	return applySort(stores, params, storeSortKey(params.By)), nil
}

func (rp *ragProxy) GetStore(ctx context.Context, storeID string) (Store, error) {
	raw, err := rp.backend.GetStore(ctx, storeID)
	if err != nil {
		return Store{}, fmt.Errorf("getting store: %w", err)
	}
	if raw == nil {
		return Store{}, ErrNotFound
	}
	return NormalizeStore(raw), nil
}

// EnsureStore returns the store to use when a request does not name one:
// the configured default, else the first existing store, else a newly
// created one.
func (rp *ragProxy) EnsureStore(ctx context.Context) (string, error) {
	if rp.defaultStore != "" {
		return rp.defaultStore, nil
	}

	raws, err := rp.backend.ListStores(ctx)
	if err != nil {
		return "", fmt.Errorf("listing stores: %w", err)
	}
	if len(raws) > 0 {
		if name := fields.String(fields.Resolve(raws[0], "name")); name != "" {
			return name, nil
		}
	}

	storeID, err := rp.backend.CreateStore(ctx, defaultStoreDisplayName)
	if err != nil {
		return "", fmt.Errorf("creating store: %w", err)
	}

	log.Printf("created default store: %s", storeID)

	return storeID, nil
}

func storeSortKey(by string) func(Store) string {
	switch by {
	case "display_name":
		return func(s Store) string { return s.DisplayName }
	case "create_time":
		return func(s Store) string { return s.CreateTime }
	case "update_time":
		return func(s Store) string { return s.UpdateTime }
	default:
		return func(s Store) string { return s.Name }
	}
}
