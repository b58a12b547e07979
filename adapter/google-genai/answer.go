package googlegenai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/RichardKnop/ragproxy"
)

const systemInstruction = "Answer concisely using the provided search results. " +
	"Always cite sources when relevant."

// GenerateAnswer asks the generative model a question grounded in one file
// search store. The raw SDK response is returned untouched; the core's
// citation resolver takes it from there.
func (a *Adapter) GenerateAnswer(ctx context.Context, question string, params ragproxy.AskParams) (ragproxy.RawValue, error) {
	if params.StoreID == "" {
		return nil, fmt.Errorf("store id is required")
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{
			FileSearch: &genai.FileSearch{
				FileSearchStoreNames: []string{params.StoreID},
			},
		}},
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	if params.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*params.Temperature))
	}

	a.logger.Sugar().With(
		"model", a.model,
		"store", params.StoreID,
	).Info("generating grounded answer")

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(question), config)
	if err != nil {
		return nil, fmt.Errorf("calling generative model: %w", err)
	}

	return resp, nil
}
