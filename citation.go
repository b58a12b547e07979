package ragproxy

import (
	"context"
	"strings"

	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// Citation is the user-facing representation of one grounding chunk.
type Citation struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	URI                 string `json:"uri"`
	Snippet             string `json:"snippet"`
	ChunkReference      string `json:"chunk_reference"`
	DocumentPath        string `json:"document_path"`
	DocumentDisplayName string `json:"document_display_name"`
	DocumentURI         string `json:"document_uri"`
	DocumentError       string `json:"document_error"`
}

type AskResult struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Snippets longer than this are cut to 497 runes plus an ellipsis marker.
const maxSnippetLen = 500

// citationKey is the uniqueness key for a citation. Chunks with identical
// text from different sub-sections of the same document collapse on purpose.
type citationKey struct {
	documentPath string
	snippet      string
	displayName  string
}

// assembleAnswer turns a raw grounded-answer value into the final answer and
// ordered, deduplicated citation list. The document-metadata cache is private
// to this one call; each distinct document path is looked up at most once and
// lookup failures are cached as placeholders rather than aborting the answer.
func (rp *ragProxy) assembleAnswer(ctx context.Context, raw RawValue) (*AskResult, error) {
	candidate := firstElement(fields.Resolve(raw, "candidates"))

	answer := fields.String(fields.Resolve(raw, "text"))
	if answer == "" {
		answer = firstPartText(candidate)
	}
	if answer == "" {
		return nil, ErrNoContent
	}

	result := &AskResult{
		Answer:    answer,
		Citations: []Citation{},
	}

	// Grounding metadata is optional; an answer without it is still an answer.
	grounding := fields.Resolve(candidate, "grounding_metadata", "groundingMetadata")
	if grounding == nil {
		return result, nil
	}

	var (
		chunks    = fields.Slice(fields.Resolve(grounding, "grounding_chunks", "groundingChunks"))
		metaCache = map[string]RawValue{}
		seen      = map[citationKey]struct{}{}
	)

	for _, chunk := range chunks {
		var (
			chunkRef = fields.String(fields.Resolve(chunk, "chunk_reference", "id"))
			segment  = fields.Resolve(chunk, "segment")
			retrCtx  = fields.Resolve(chunk, "retrieved_context", "retrievedContext")
		)

		snippet := fields.String(fields.Resolve(chunk, "snippet"))
		if snippet == "" {
			snippet = fields.String(fields.Resolve(segment, "snippet"))
		}
		if snippet == "" {
			snippet = fields.String(fields.Resolve(segment, "text"))
		}
		if snippet == "" {
			snippet = fields.String(fields.Resolve(retrCtx, "text"))
		}
		snippet = truncateSnippet(snippet)

		title := fields.String(fields.Resolve(chunk, "title", "display_name"))
		if title == "" {
			title = fields.String(fields.Resolve(segment, "title"))
		}
		if title == "" {
			title = fields.String(fields.Resolve(retrCtx, "title"))
		}

		uri := fields.String(fields.Resolve(chunk, "uri"))
		if uri == "" {
			uri = fields.String(fields.Resolve(segment, "uri"))
		}
		if uri == "" {
			uri = fields.String(fields.Resolve(retrCtx, "uri"))
		}

		var documentPath string
		if chunkRef != "" {
			documentPath, _, _ = strings.Cut(chunkRef, "#")
		}

		if documentPath != "" {
			if _, ok := metaCache[documentPath]; !ok {
				meta, err := rp.backend.DocumentMetadata(ctx, documentPath)
				if err != nil {
					// Cache the failure so no re-fetch happens within
					// this call; the citation carries the error instead.
					meta = map[string]any{"error": err.Error()}
				}
				metaCache[documentPath] = meta
			}
		}

		var meta RawValue
		if documentPath != "" {
			meta = metaCache[documentPath]
		}

		var (
			docError       = fields.String(fields.Resolve(meta, "error"))
			docDisplayName = fields.String(fields.Resolve(meta, "display_name", "displayName", "title"))
			docURI         = fields.String(fields.Resolve(meta, "uri"))
		)
		if meta == nil || docError != "" {
			if docDisplayName == "" {
				docDisplayName = fields.String(fields.Resolve(retrCtx, "title"))
			}
			if docURI == "" {
				docURI = fields.String(fields.Resolve(retrCtx, "uri"))
			}
		}

		key := citationKey{
			documentPath: documentPath,
			snippet:      snippet,
			displayName:  docDisplayName,
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if uri == "" {
			uri = docURI
		}

		result.Citations = append(result.Citations, Citation{
			ID:                  chunkRef,
			Title:               title,
			URI:                 uri,
			Snippet:             snippet,
			ChunkReference:      chunkRef,
			DocumentPath:        documentPath,
			DocumentDisplayName: docDisplayName,
			DocumentURI:         docURI,
			DocumentError:       docError,
		})
	}

	return result, nil
}

// truncateSnippet bounds a snippet at maxSnippetLen runes, counting
// characters rather than bytes so multi-byte text is never cut mid-rune.
func truncateSnippet(snippet string) string {
	runes := []rune(snippet)
	if len(runes) <= maxSnippetLen {
		return snippet
	}
	head := strings.TrimRight(string(runes[:maxSnippetLen-3]), " \t\n\r")
	return head + "..."
}

// firstPartText walks the candidate's content parts and returns the first
// non-empty text it finds.
func firstPartText(candidate RawValue) string {
	parts := fields.Slice(fields.Resolve(fields.Resolve(candidate, "content"), "parts"))
	for _, part := range parts {
		if text := fields.String(fields.Resolve(part, "text")); text != "" {
			return text
		}
	}
	return ""
}

func firstElement(value RawValue) RawValue {
	elements := fields.Slice(value)
	if len(elements) == 0 {
		return nil
	}
	return elements[0]
}
