// Package filestorage stages uploaded content in a local directory until it
// has been handed to the backend.
package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

type Adapter struct {
	dir    string
	logger *zap.Logger
}

type Option func(*Adapter)

func WithDir(dir string) Option {
	return func(a *Adapter) {
		a.dir = dir
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(opts ...Option) (*Adapter, error) {
	a := &Adapter{
		dir:    os.TempDir(),
		logger: zap.NewNop(),
	}

	for _, o := range opts {
		o(a)
	}

	if _, err := os.Stat(a.dir); err != nil {
		return nil, err
	}

	a.logger.Sugar().With(
		"directory", a.dir,
	).Info("init filestorage adapter")

	return a, nil
}

// Save writes data to a uniquely named staging file, keeping the original
// extension so content type detection by suffix still works downstream.
func (a *Adapter) Save(name string, data io.Reader) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".tmp"
	}

	location := filepath.Join(a.dir, fmt.Sprintf("upload-%s%s", uuid.Must(uuid.NewV4()), ext))

	f, err := os.Create(location)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(location)
		return "", err
	}

	return location, nil
}

func (a *Adapter) Delete(path string) error {
	return os.Remove(path)
}
