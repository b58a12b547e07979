package ragproxy

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// AskParams carries the per-request knobs for a grounded answer. Zero values
// fall back to the service defaults; a nil Temperature means "use default"
// so an explicit 0 remains expressible.
type AskParams struct {
	StoreID     string
	MaxChunks   int
	Temperature *float64
}

// Ask submits a grounded question against a file search store and assembles
// the answer together with its citations.
func (rp *ragProxy) Ask(ctx context.Context, question string, params AskParams) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	if params.StoreID == "" {
		storeID, err := rp.EnsureStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("ensuring store: %w", err)
		}
		params.StoreID = storeID
	}
	if params.MaxChunks <= 0 {
		params.MaxChunks = rp.maxChunks
	}
	if params.Temperature == nil {
		temperature := rp.temperature
		params.Temperature = &temperature
	}

	log.Printf("asking question against store: %s", params.StoreID)

	raw, err := rp.backend.GenerateAnswer(ctx, question, params)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return rp.assembleAnswer(ctx, raw)
}
