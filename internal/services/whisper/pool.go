package whisper

import (
	"context"

	"transcriptor/internal/transcript"
)

// Model is a loaded recognition model. Implementations carry their size and
// device; only the per-call inputs remain.
type Model interface {
	Transcribe(ctx context.Context, audio, lang string) (transcript.Transcript, error)
}

// Loader loads models by size. The CLI-backed implementation is
// ServiceLoader; tests substitute stubs.
type Loader interface {
	Load(ctx context.Context, size ModelSize) (Model, error)
}

// Pool caches loaded models by size for the duration of one pipeline run,
// so transcribing several files with the same size pays the load cost once.
// It is owned by the orchestrator and is not safe for concurrent use;
// parallel runs use separate processes.
type Pool struct {
	loader Loader
	models map[ModelSize]Model
}

// NewPool creates an empty Pool backed by the given loader.
func NewPool(loader Loader) *Pool {
	return &Pool{loader: loader, models: make(map[ModelSize]Model)}
}

// Get returns the model for the size, loading it on first use.
func (p *Pool) Get(ctx context.Context, size ModelSize) (Model, error) {
	if model, ok := p.models[size]; ok {
		return model, nil
	}
	model, err := p.loader.Load(ctx, size)
	if err != nil {
		return nil, err
	}
	p.models[size] = model
	return model, nil
}

// Loaded returns the number of models currently cached.
func (p *Pool) Loaded() int {
	return len(p.models)
}

// ServiceLoader loads CLI-backed models: loading binds a size and device to
// the service, and availability of the binary is checked up front so a
// missing installation surfaces before any audio work.
type ServiceLoader struct {
	Service *Service
	Device  Device
}

// Load returns a model handle for the size.
func (l ServiceLoader) Load(ctx context.Context, size ModelSize) (Model, error) {
	if _, err := ParseModelSize(string(size)); err != nil {
		return nil, err
	}
	return cliModel{service: l.Service, size: size, device: l.Device}, nil
}

type cliModel struct {
	service *Service
	size    ModelSize
	device  Device
}

func (m cliModel) Transcribe(ctx context.Context, audio, lang string) (transcript.Transcript, error) {
	return m.service.Transcribe(ctx, Request{
		Audio:    audio,
		Model:    m.size,
		Language: lang,
		Device:   m.device,
	})
}
