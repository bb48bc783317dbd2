package deps

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"transcriptor/internal/config"
	"transcriptor/internal/services"
)

// ExtractionRequirements lists the binaries audio extraction needs.
func ExtractionRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for audio extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Used for media inspection",
			Optional:    true,
		},
	}
}

// TranscriptionRequirements lists the binaries transcription needs.
func TranscriptionRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Whisper",
			Command:     cfg.WhisperBinary(),
			Description: "Required for speech transcription",
		},
		{
			Name:        "nvidia-smi",
			Command:     cfg.NvidiaSMIBinary(),
			Description: "Enables CUDA detection; CPU is used without it",
			Optional:    true,
		},
	}
}

// SystemRequirements lists every external dependency the full pipeline can touch.
func SystemRequirements(cfg *config.Config) []Requirement {
	reqs := ExtractionRequirements(cfg)
	return append(reqs, TranscriptionRequirements(cfg)...)
}

// CheckSystem evaluates all system-level dependencies for the given config.
// When an output directory is configured its accessibility is included.
func CheckSystem(cfg *config.Config) []Status {
	statuses := CheckBinaries(SystemRequirements(cfg))
	if dir := strings.TrimSpace(cfg.Pipeline.OutputDir); dir != "" {
		statuses = append(statuses, CheckDirectoryAccess("Output directory", dir))
	}
	return statuses
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Status {
	status := Status{Name: name, Command: path, Description: "Destination for pipeline outputs"}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
			return status
		}
		status.Detail = fmt.Sprintf("stat: %v", err)
		return status
	}
	if !info.IsDir() {
		status.Detail = "is not a directory"
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("insufficient permissions: %v", err)
		return status
	}
	status.Available = true
	return status
}

// MissingError returns a DependencyMissing error for the first required
// dependency that is unavailable, or nil when everything required resolves.
func MissingError(statuses []Status) error {
	for _, status := range statuses {
		if status.Optional || status.Available {
			continue
		}
		return services.Wrap(services.ErrDependencyMissing, "deps", status.Name, status.Detail, nil)
	}
	return nil
}
