package whisper

import (
	"context"
	"errors"
	"testing"

	"transcriptor/internal/transcript"
)

type stubModel struct {
	size ModelSize
}

func (m stubModel) Transcribe(ctx context.Context, audio, lang string) (transcript.Transcript, error) {
	return transcript.Transcript{Language: lang, Text: string(m.size)}, nil
}

type countingLoader struct {
	loads map[ModelSize]int
	err   error
}

func (l *countingLoader) Load(ctx context.Context, size ModelSize) (Model, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.loads == nil {
		l.loads = make(map[ModelSize]int)
	}
	l.loads[size]++
	return stubModel{size: size}, nil
}

func TestPoolLoadsEachSizeOnce(t *testing.T) {
	loader := &countingLoader{}
	pool := NewPool(loader)

	for i := 0; i < 3; i++ {
		model, err := pool.Get(context.Background(), ModelBase)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if model == nil {
			t.Fatal("expected a model")
		}
	}
	if loader.loads[ModelBase] != 1 {
		t.Fatalf("expected one load for base, got %d", loader.loads[ModelBase])
	}

	if _, err := pool.Get(context.Background(), ModelSmall); err != nil {
		t.Fatalf("Get small: %v", err)
	}
	if loader.loads[ModelSmall] != 1 {
		t.Fatalf("expected one load for small, got %d", loader.loads[ModelSmall])
	}
	if pool.Loaded() != 2 {
		t.Fatalf("expected 2 cached models, got %d", pool.Loaded())
	}
}

func TestPoolPropagatesLoadFailure(t *testing.T) {
	loader := &countingLoader{err: errors.New("weights unavailable")}
	pool := NewPool(loader)

	if _, err := pool.Get(context.Background(), ModelTiny); err == nil {
		t.Fatal("expected load error")
	}
	if pool.Loaded() != 0 {
		t.Fatalf("failed load must not be cached, got %d", pool.Loaded())
	}
}

func TestServiceLoaderRejectsUnknownSize(t *testing.T) {
	loader := ServiceLoader{Service: NewService("whisper", DefaultOptions()), Device: DeviceCPU}
	if _, err := loader.Load(context.Background(), ModelSize("huge")); err == nil {
		t.Fatal("expected error for unknown size")
	}
}

func TestServiceLoaderModelRunsService(t *testing.T) {
	audio := writeAudioFile(t)
	payload := `{"text":"selam","language":"tr","segments":[{"start":0,"end":1,"text":"selam"}]}`
	var gotArgs []string
	service := NewService("whisper", DefaultOptions())
	service.WithCommandRunner(modelRunner(t, payload, &gotArgs))

	pool := NewPool(ServiceLoader{Service: service, Device: DeviceCPU})
	model, err := pool.Get(context.Background(), ModelSmall)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	result, err := model.Transcribe(context.Background(), audio, "tr")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "selam" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if got := argValue(gotArgs, "--model"); got != "small" {
		t.Fatalf("--model = %q, want small", got)
	}
	if got := argValue(gotArgs, "--device"); got != "cpu" {
		t.Fatalf("--device = %q, want cpu", got)
	}
}
