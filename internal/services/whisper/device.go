package whisper

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"transcriptor/internal/services"
)

// Device selects where model inference runs.
type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

// ParseDevice resolves a user-supplied device name.
func ParseDevice(value string) (Device, error) {
	cleaned := Device(strings.ToLower(strings.TrimSpace(value)))
	switch cleaned {
	case DeviceAuto, DeviceCUDA, DeviceCPU:
		return cleaned, nil
	case "":
		return DeviceAuto, nil
	}
	return "", services.Wrap(services.ErrUnsupportedFormat, "transcription", "parse device",
		fmt.Sprintf("device %q is not one of auto, cuda, cpu", strings.TrimSpace(value)), nil)
}

// Prober detects accelerated hardware by asking the GPU management tool.
type Prober struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewProber creates a Prober bound to the given nvidia-smi binary.
func NewProber(binary string) *Prober {
	if strings.TrimSpace(binary) == "" {
		binary = "nvidia-smi"
	}
	return &Prober{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (p *Prober) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	p.commandRunner = runner
}

// CUDAAvailable reports whether a CUDA device is usable. Any probe failure
// (binary absent, non-zero exit) means no.
func (p *Prober) CUDAAvailable(ctx context.Context) bool {
	if p.commandRunner != nil {
		return p.commandRunner(ctx, p.binary, "-L") == nil
	}
	if _, err := exec.LookPath(p.binary); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, p.binary, "-L") //nolint:gosec
	return cmd.Run() == nil
}

// Resolve maps the requested device to a concrete one. Auto prefers CUDA
// when the probe succeeds and falls back to CPU silently; explicit choices
// pass through untouched.
func (p *Prober) Resolve(ctx context.Context, requested Device) Device {
	switch requested {
	case DeviceCUDA, DeviceCPU:
		return requested
	}
	if p.CUDAAvailable(ctx) {
		return DeviceCUDA
	}
	return DeviceCPU
}
