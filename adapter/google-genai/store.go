package googlegenai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/pkg/fields"
)

func (a *Adapter) CreateStore(ctx context.Context, displayName string) (string, error) {
	store, err := a.doJSON(ctx, http.MethodPost, a.baseURL+"/fileSearchStores", map[string]any{
		"displayName": displayName,
	})
	if err != nil {
		return "", err
	}

	name := fields.String(fields.Resolve(store, "name"))
	if name == "" {
		return "", fmt.Errorf("create store response missing name")
	}

	a.logger.Sugar().With("store", name).Info("created file search store")

	return name, nil
}

func (a *Adapter) ListStores(ctx context.Context) ([]ragproxy.RawValue, error) {
	return a.listPages(ctx, a.baseURL+"/fileSearchStores", "fileSearchStores")
}

func (a *Adapter) GetStore(ctx context.Context, storeID string) (ragproxy.RawValue, error) {
	store, err := a.doJSON(ctx, http.MethodGet, a.baseURL+"/"+storeID, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}

func (a *Adapter) ListDocuments(ctx context.Context, storeID string) ([]ragproxy.RawValue, error) {
	return a.listPages(ctx, a.baseURL+"/"+storeID+"/documents", "documents")
}

func (a *Adapter) DocumentMetadata(ctx context.Context, documentPath string) (ragproxy.RawValue, error) {
	if documentPath == "" {
		return nil, nil
	}
	document, err := a.doJSON(ctx, http.MethodGet, a.baseURL+"/"+documentPath, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return document, nil
}

// listPages drains a paginated collection endpoint.
func (a *Adapter) listPages(ctx context.Context, url, key string) ([]ragproxy.RawValue, error) {
	var out []ragproxy.RawValue

	pageURL := url
	for {
		page, err := a.doJSON(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}

		out = append(out, fields.Slice(fields.Resolve(page, key))...)

		token := fields.String(fields.Resolve(page, "next_page_token", "nextPageToken"))
		if token == "" {
			return out, nil
		}
		pageURL = url + "?pageToken=" + token
	}
}
