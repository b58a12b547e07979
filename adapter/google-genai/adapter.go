// Package googlegenai talks to the Gemini File Search backend. Grounded
// answers go through the genai SDK; store, document and operation plumbing
// uses the v1beta REST surface directly, which hands back plain JSON maps.
// The core never learns which shape it got.
package googlegenai

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	defaultUploadBaseURL = "https://generativelanguage.googleapis.com/upload/v1beta"
	defaultModel         = "models/gemini-2.5-flash"
)

type Adapter struct {
	client        *genai.Client
	httpClient    *http.Client
	apiKey        string
	model         string
	baseURL       string
	uploadBaseURL string
	logger        *zap.Logger
}

type Option func(*Adapter)

func WithModel(model string) Option {
	return func(a *Adapter) {
		if model != "" {
			a.model = model
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = client
	}
}

func WithBaseURL(baseURL string) Option {
	return func(a *Adapter) {
		a.baseURL = baseURL
	}
}

func WithUploadBaseURL(uploadBaseURL string) Option {
	return func(a *Adapter) {
		a.uploadBaseURL = uploadBaseURL
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(client *genai.Client, apiKey string, options ...Option) *Adapter {
	a := &Adapter{
		client:        client,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		apiKey:        apiKey,
		model:         defaultModel,
		baseURL:       defaultBaseURL,
		uploadBaseURL: defaultUploadBaseURL,
		logger:        zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"model", a.model,
		"base url", a.baseURL,
	).Info("init google genai adapter")

	return a
}

const adapterName = "google-genai"

func (a *Adapter) Name() string {
	return adapterName
}
