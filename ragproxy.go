package ragproxy

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNoContent = errors.New("no content in response")
)

// RawValue is an opaque value returned by the backend. Structurally it is
// either a key-value mapping (decoded JSON) or an attribute-bearing SDK
// struct; callers must never assume which and go through pkg/fields instead.
type RawValue = any

const (
	defaultPollInterval     = 5 * time.Second
	defaultStoreDisplayName = "RAG Proxy Store"
	defaultMaxChunks        = 16
	defaultTemperature      = 0.3
)

type ragProxy struct {
	backend      FileSearch
	storage      FileStorage
	defaultStore string
	maxChunks    int
	temperature  float64
	pollInterval time.Duration
}

type Option func(*ragProxy)

// WithDefaultStore pins the store used when a request does not name one.
func WithDefaultStore(storeID string) Option {
	return func(rp *ragProxy) {
		rp.defaultStore = storeID
	}
}

func WithMaxChunks(maxChunks int) Option {
	return func(rp *ragProxy) {
		if maxChunks > 0 {
			rp.maxChunks = maxChunks
		}
	}
}

func WithTemperature(temperature float64) Option {
	return func(rp *ragProxy) {
		rp.temperature = temperature
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(rp *ragProxy) {
		if interval > 0 {
			rp.pollInterval = interval
		}
	}
}

func New(backend FileSearch, storage FileStorage, options ...Option) *ragProxy {
	rp := &ragProxy{
		backend:      backend,
		storage:      storage,
		maxChunks:    defaultMaxChunks,
		temperature:  defaultTemperature,
		pollInterval: defaultPollInterval,
	}

	for _, o := range options {
		o(rp)
	}

	return rp
}
