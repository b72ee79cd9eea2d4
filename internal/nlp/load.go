package nlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jdkato/prose/v2"
)

var (
	// ErrUnavailable is returned by Process on a pipeline without a model.
	ErrUnavailable = errors.New("linguistic pipeline unavailable")
	// ErrModelLoad indicates a custom model directory could not be loaded.
	ErrModelLoad = errors.New("failed to load language model")
)

// Options controls how the language model is acquired.
type Options struct {
	// ModelPath points to a custom prose model directory. Empty selects the
	// bundled English model.
	ModelPath string
	Enabled   bool
}

// modelFromDisk is swapped in tests.
var modelFromDisk = prose.ModelFromDisk

// Load acquires a language model. Failure is not fatal: the returned pipeline
// reports itself unavailable and a single warning is logged.
func Load(opts Options) Pipeline {
	if !opts.Enabled {
		slog.Warn("Linguistic pipeline disabled, using regex extraction only")
		return Unavailable()
	}

	if opts.ModelPath == "" {
		return NewProsePipeline(nil)
	}

	model, err := loadModel(opts.ModelPath)
	if err != nil {
		slog.Warn("Language model not found, using regex extraction only",
			"path", opts.ModelPath,
			"error", err)
		return Unavailable()
	}

	return NewProsePipeline(model)
}

func loadModel(path string) (model *prose.Model, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrModelLoad, path)
	}

	// prose panics on malformed model data
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("%w: %v", ErrModelLoad, r)
		}
	}()

	model = modelFromDisk(path)
	if model == nil {
		return nil, fmt.Errorf("%w: empty model at %s", ErrModelLoad, path)
	}
	return model, nil
}

type unavailablePipeline struct{}

// Unavailable returns a pipeline that has no model.
func Unavailable() Pipeline {
	return unavailablePipeline{}
}

func (unavailablePipeline) Available() bool {
	return false
}

func (unavailablePipeline) Process(_ context.Context, _ string) (*Doc, error) {
	return nil, ErrUnavailable
}
