package ragproxytest

type ChunkOption func(map[string]any)

func WithChunkReference(ref string) ChunkOption {
	return func(chunk map[string]any) {
		chunk["chunk_reference"] = ref
	}
}

func WithChunkSnippet(snippet string) ChunkOption {
	return func(chunk map[string]any) {
		chunk["snippet"] = snippet
	}
}

// Chunk builds one raw grounding chunk with a retrieved context, the shape
// the file search tool attaches to answers.
func (g *DataGen) Chunk(options ...ChunkOption) map[string]any {
	chunk := map[string]any{
		"chunk_reference": g.DocumentName() + "#" + g.LetterN(6),
		"retrieved_context": map[string]any{
			"text":  g.Paragraph(2, 4, 12, " "),
			"title": g.BookTitle(),
			"uri":   g.URL(),
		},
	}

	for _, o := range options {
		o(chunk)
	}

	return chunk
}

// Answer builds a raw grounded-answer payload around the given chunks.
func (g *DataGen) Answer(text string, chunks ...map[string]any) map[string]any {
	candidate := map[string]any{
		"content": map[string]any{
			"parts": []any{
				map[string]any{"text": text},
			},
		},
	}
	if len(chunks) > 0 {
		anyChunks := make([]any, 0, len(chunks))
		for _, chunk := range chunks {
			anyChunks = append(anyChunks, chunk)
		}
		candidate["groundingMetadata"] = map[string]any{
			"groundingChunks": anyChunks,
		}
	}

	return map[string]any{
		"candidates": []any{candidate},
	}
}
