package ragproxy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/ragproxy/ragproxytest"
)

func TestAssembleAnswerNoGrounding(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(10)
	rp := New(new(fakeBackend), new(fakeStorage))

	result, err := rp.assembleAnswer(context.Background(), gen.Answer("the answer"))
	require.NoError(t, err)

	assert.Equal(t, "the answer", result.Answer)
	assert.Empty(t, result.Citations)
	assert.NotNil(t, result.Citations, "citations render as an empty list, not null")
}

func TestAssembleAnswerNoContent(t *testing.T) {
	t.Parallel()

	rp := New(new(fakeBackend), new(fakeStorage))

	testCases := []struct {
		name string
		raw  RawValue
	}{
		{
			name: "no candidates",
			raw:  map[string]any{"candidates": []any{}},
		},
		{
			name: "empty parts",
			raw: map[string]any{
				"candidates": []any{
					map[string]any{"content": map[string]any{"parts": []any{}}},
				},
			},
		},
		{
			name: "empty text",
			raw: map[string]any{
				"candidates": []any{
					map[string]any{"content": map[string]any{"parts": []any{
						map[string]any{"text": ""},
					}}},
				},
			},
		},
		{
			name: "nil payload",
			raw:  nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := rp.assembleAnswer(context.Background(), tc.raw)
			assert.ErrorIs(t, err, ErrNoContent)
		})
	}
}

func TestAssembleAnswerTopLevelTextWins(t *testing.T) {
	t.Parallel()

	rp := New(new(fakeBackend), new(fakeStorage))

	raw := map[string]any{
		"text": "convenience accessor text",
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{
				map[string]any{"text": "part text"},
			}}},
		},
	}

	result, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "convenience accessor text", result.Answer)
}

func TestAssembleAnswerCitations(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(11)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadata: map[string]RawValue{
			docPath: map[string]any{
				"displayName": "handbook.pdf",
				"uri":         "https://example.com/handbook.pdf",
			},
		},
	}
	rp := New(backend, new(fakeStorage))

	chunk := gen.Chunk(
		ragproxytest.WithChunkReference(docPath+"#0"),
		ragproxytest.WithChunkSnippet("vacation policy is twenty five days"),
	)

	result, err := rp.assembleAnswer(context.Background(), gen.Answer("the answer", chunk))
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)

	citation := result.Citations[0]
	assert.Equal(t, docPath+"#0", citation.ID)
	assert.Equal(t, docPath+"#0", citation.ChunkReference)
	assert.Equal(t, docPath, citation.DocumentPath)
	assert.Equal(t, "vacation policy is twenty five days", citation.Snippet)
	assert.Equal(t, "handbook.pdf", citation.DocumentDisplayName)
	assert.Equal(t, "https://example.com/handbook.pdf", citation.DocumentURI)
	assert.Empty(t, citation.DocumentError)
}

func TestAssembleAnswerDeduplicatesCitations(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(12)

	docPath := gen.DocumentName()
	otherPath := gen.DocumentName()
	backend := &fakeBackend{
		metadata: map[string]RawValue{
			docPath:   map[string]any{"displayName": "handbook.pdf"},
			otherPath: map[string]any{"displayName": "faq.pdf"},
		},
	}
	rp := New(backend, new(fakeStorage))

	// Two chunks from different sections of the same document carrying the
	// same snippet collapse; the chunk from another document survives.
	raw := gen.Answer("the answer",
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#0"), ragproxytest.WithChunkSnippet("same snippet")),
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#7"), ragproxytest.WithChunkSnippet("same snippet")),
		gen.Chunk(ragproxytest.WithChunkReference(otherPath+"#0"), ragproxytest.WithChunkSnippet("same snippet")),
	)

	result, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, result.Citations, 2)

	assert.Equal(t, docPath, result.Citations[0].DocumentPath)
	assert.Equal(t, docPath+"#0", result.Citations[0].ChunkReference, "first occurrence wins")
	assert.Equal(t, otherPath, result.Citations[1].DocumentPath)
}

func TestAssembleAnswerTruncatesSnippet(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(13)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadata: map[string]RawValue{
			docPath: map[string]any{"displayName": "handbook.pdf"},
		},
	}
	rp := New(backend, new(fakeStorage))

	long := strings.Repeat("a", 600)
	raw := gen.Answer("the answer",
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#0"), ragproxytest.WithChunkSnippet(long)),
	)

	result, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)

	snippet := result.Citations[0].Snippet
	assert.Len(t, []rune(snippet), 500)
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.Equal(t, strings.Repeat("a", 497), strings.TrimSuffix(snippet, "..."))
}

func TestAssembleAnswerMetadataCachedPerCall(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(14)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadata: map[string]RawValue{
			docPath: map[string]any{"displayName": "handbook.pdf"},
		},
	}
	rp := New(backend, new(fakeStorage))

	raw := gen.Answer("the answer",
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#0")),
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#1")),
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#2")),
	)

	_, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.metadataCalls[docPath], "one lookup per document per call")

	// The cache does not outlive the call.
	_, err = rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.metadataCalls[docPath])
}

func TestAssembleAnswerMetadataLookupFailure(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(15)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadataErr: map[string]error{
			docPath: assert.AnError,
		},
	}
	rp := New(backend, new(fakeStorage))

	raw := gen.Answer("the answer",
		gen.Chunk(
			ragproxytest.WithChunkReference(docPath+"#0"),
			ragproxytest.WithChunkSnippet("snippet one"),
		),
		gen.Chunk(
			ragproxytest.WithChunkReference(docPath+"#1"),
			ragproxytest.WithChunkSnippet("snippet two"),
		),
	)

	result, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err, "metadata failures degrade the citation, not the answer")
	require.Len(t, result.Citations, 2)

	for _, citation := range result.Citations {
		assert.Equal(t, assert.AnError.Error(), citation.DocumentError)
	}

	assert.Equal(t, 1, backend.metadataCalls[docPath], "failures are cached as placeholders")
}

func TestAssembleAnswerRetrievedContextFallback(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(16)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadataErr: map[string]error{
			docPath: assert.AnError,
		},
	}
	rp := New(backend, new(fakeStorage))

	chunk := map[string]any{
		"chunk_reference": docPath + "#0",
		"snippet":         "the snippet",
		"retrieved_context": map[string]any{
			"title": "Fallback Title",
			"uri":   "https://example.com/fallback",
		},
	}

	result, err := rp.assembleAnswer(context.Background(), gen.Answer("the answer", chunk))
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)

	citation := result.Citations[0]
	assert.Equal(t, "Fallback Title", citation.DocumentDisplayName)
	assert.Equal(t, "https://example.com/fallback", citation.DocumentURI)
	assert.Equal(t, assert.AnError.Error(), citation.DocumentError)
}

func TestAssembleAnswerStructShaped(t *testing.T) {
	t.Parallel()

	// Mirrors the attribute-bearing shape the SDK client hands back.
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []*part `json:"parts"`
	}
	type retrievedContext struct {
		Text  string `json:"text"`
		Title string `json:"title"`
		URI   string `json:"uri"`
	}
	type groundingChunk struct {
		RetrievedContext *retrievedContext `json:"retrievedContext"`
	}
	type groundingMetadata struct {
		GroundingChunks []*groundingChunk `json:"groundingChunks"`
	}
	type candidate struct {
		Content           *content           `json:"content"`
		GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
	}
	type response struct {
		Candidates []*candidate `json:"candidates"`
	}

	raw := &response{
		Candidates: []*candidate{{
			Content: &content{Parts: []*part{{Text: "struct answer"}}},
			GroundingMetadata: &groundingMetadata{
				GroundingChunks: []*groundingChunk{{
					RetrievedContext: &retrievedContext{
						Text:  "struct snippet",
						Title: "Struct Title",
						URI:   "https://example.com/struct",
					},
				}},
			},
		}},
	}

	rp := New(new(fakeBackend), new(fakeStorage))

	result, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "struct answer", result.Answer)
	require.Len(t, result.Citations, 1)

	citation := result.Citations[0]
	assert.Equal(t, "struct snippet", citation.Snippet)
	assert.Equal(t, "Struct Title", citation.Title)
	assert.Equal(t, "https://example.com/struct", citation.URI)
	assert.Empty(t, citation.DocumentPath, "no chunk reference means no metadata lookup")
}

func TestAssembleAnswerIdempotent(t *testing.T) {
	t.Parallel()

	gen := ragproxytest.New(17)

	docPath := gen.DocumentName()
	backend := &fakeBackend{
		metadata: map[string]RawValue{
			docPath: map[string]any{"displayName": "handbook.pdf"},
		},
	}
	rp := New(backend, new(fakeStorage))

	raw := gen.Answer("the answer",
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#0")),
		gen.Chunk(ragproxytest.WithChunkReference(docPath+"#1")),
	)

	first, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)
	second, err := rp.assembleAnswer(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTruncateSnippet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		snippet  string
		expected string
	}{
		{
			name:     "short snippet untouched",
			snippet:  "short",
			expected: "short",
		},
		{
			name:     "exactly at the limit untouched",
			snippet:  strings.Repeat("b", 500),
			expected: strings.Repeat("b", 500),
		},
		{
			name:     "over the limit gets the ellipsis",
			snippet:  strings.Repeat("b", 501),
			expected: strings.Repeat("b", 497) + "...",
		},
		{
			name:     "trailing whitespace trimmed before the ellipsis",
			snippet:  strings.Repeat("b", 490) + strings.Repeat(" ", 20),
			expected: strings.Repeat("b", 490) + "...",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, truncateSnippet(tc.snippet))
		})
	}
}

func TestTruncateSnippetMultiByte(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("日", 600)
	truncated := truncateSnippet(long)

	assert.Len(t, []rune(truncated), 500)
	assert.Equal(t, strings.Repeat("日", 497)+"...", truncated)
}
