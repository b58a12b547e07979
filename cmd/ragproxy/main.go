package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/adapter/filestorage"
	googlegenai "github.com/RichardKnop/ragproxy/adapter/google-genai"
)

// RagProxy is the slice of the service the CLI drives.
type RagProxy interface {
	EnsureStore(ctx context.Context) (string, error)
	UploadFiles(ctx context.Context, uploads []ragproxy.Upload, storeID string, wait bool) ([]ragproxy.Operation, error)
	Ask(ctx context.Context, question string, params ragproxy.AskParams) (*ragproxy.AskResult, error)
}

var rootCmd = &cobra.Command{
	Use:          "ragproxy",
	Short:        "Interact with the file search backend from the command line",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildProxy wires the same adapters the HTTP server uses, configured from
// the environment.
func buildProxy(ctx context.Context) (RagProxy, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_AI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	options := []googlegenai.Option{}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		options = append(options, googlegenai.WithModel(model))
	}
	backend := googlegenai.New(genaiClient, apiKey, options...)

	storage, err := filestorage.New()
	if err != nil {
		return nil, fmt.Errorf("filestorage adapter: %w", err)
	}

	return ragproxy.New(
		backend,
		storage,
		ragproxy.WithDefaultStore(os.Getenv("FILE_SEARCH_STORE_ID")),
	), nil
}
