package ragproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Upload names one staged local file headed for the backend.
type Upload struct {
	Path        string
	DisplayName string
}

// FileUpload carries not-yet-staged content, e.g. one part of a multipart
// request body.
type FileUpload struct {
	Name     string
	Contents io.Reader
}

// UploadContents stages incoming content on local disk, hands it to the
// backend and cleans the staging files up afterwards.
func (rp *ragProxy) UploadContents(ctx context.Context, files []FileUpload, storeID string, wait bool) ([]Operation, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	uploads := make([]Upload, 0, len(files))
	for _, aFile := range files {
		location, err := rp.storage.Save(aFile.Name, aFile.Contents)
		if err != nil {
			return nil, fmt.Errorf("staging file %q: %w", aFile.Name, err)
		}
		defer func() {
			if err := rp.storage.Delete(location); err != nil {
				log.Printf("error deleting staged file: %s", location)
			}
		}()
		uploads = append(uploads, Upload{Path: location, DisplayName: aFile.Name})
	}

	return rp.UploadFiles(ctx, uploads, storeID, wait)
}

// UploadFiles starts one ingestion operation per file. With wait set, each
// operation gets its own poller; the pollers run concurrently and a failed
// document surfaces in its own Operation.Error without aborting siblings.
// Cancellation of ctx stops all pollers.
func (rp *ragProxy) UploadFiles(ctx context.Context, uploads []Upload, storeID string, wait bool) ([]Operation, error) {
	if storeID == "" {
		var err error
		storeID, err = rp.EnsureStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("ensuring store: %w", err)
		}
	}

	raws := make([]RawValue, 0, len(uploads))
	for _, upload := range uploads {
		log.Printf("uploading file: %s to store: %s", upload.DisplayName, storeID)

		raw, err := rp.backend.UploadDocument(ctx, upload.Path, storeID, upload.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("uploading %q: %w", upload.DisplayName, err)
		}
		raws = append(raws, raw)
	}

	waitErrs := make([]error, len(raws))
	if wait {
		g, gctx := errgroup.WithContext(ctx)
		for i := range raws {
			g.Go(func() error {
				final, err := rp.waitUntilDone(gctx, raws[i])
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return err
					}
					// Terminal for this one document only.
					waitErrs[i] = err
				}
				if final != nil {
					raws[i] = final
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("waiting for uploads: %w", err)
		}
	}

	operations := make([]Operation, 0, len(raws))
	for i, raw := range raws {
		operation := NormalizeOperation(raw, uploads[i].DisplayName)
		if waitErrs[i] != nil && operation.Error == "" {
			operation.Error = waitErrs[i].Error()
		}
		operations = append(operations, operation)
	}

	return operations, nil
}

const (
	downloadTimeout   = 60 * time.Second
	downloadUserAgent = "RAG-Proxy/1.0"
)

// UploadURL downloads a remote document, stages it and ingests it like a
// direct upload.
func (rp *ragProxy) UploadURL(ctx context.Context, rawURL, displayName, storeID string, wait bool) ([]Operation, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %s", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading remote file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading remote file: unexpected status %d", resp.StatusCode)
	}

	name := displayName
	if name == "" {
		name = path.Base(parsed.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = "remote-document"
	}
	if path.Ext(name) == "" {
		contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			name += exts[0]
		}
	}

	return rp.UploadContents(ctx, []FileUpload{{Name: name, Contents: resp.Body}}, storeID, wait)
}

// OperationStatus performs a single status check on a named operation.
func (rp *ragProxy) OperationStatus(ctx context.Context, name string) (Operation, error) {
	if name == "" {
		return Operation{}, fmt.Errorf("operation name cannot be empty")
	}

	raw, err := rp.backend.PollOperation(ctx, map[string]any{"name": name})
	if err != nil {
		return Operation{}, fmt.Errorf("fetching operation status: %w", err)
	}

	operation := NormalizeOperation(raw, "")

	// Bare document ids are qualified so clients can use them directly
	// against the documents API.
	if operation.DocumentName != "" && operation.Store != "" &&
		!strings.HasPrefix(operation.DocumentName, "fileSearchStores/") {
		operation.DocumentName = operation.Store + "/documents/" + operation.DocumentName
	}

	return operation, nil
}
