package ffmpeg

import (
	"fmt"
	"strings"

	"transcriptor/internal/services"
)

// Quality selects one of the fixed extraction presets.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Preset is the bundle of sampling parameters behind a quality label. The
// values are fixed; the filter chains shape speech frequencies and level the
// volume so the recognition model gets consistent input.
type Preset struct {
	Name       Quality
	SampleRate int
	BitDepth   int
	Codec      string
	Filters    string
}

var presets = map[Quality]Preset{
	QualityLow: {
		Name:       QualityLow,
		SampleRate: 16000,
		BitDepth:   16,
		Codec:      "pcm_s16le",
		Filters:    "highpass=f=200,lowpass=f=3000,volume=1.0",
	},
	QualityMedium: {
		Name:       QualityMedium,
		SampleRate: 44100,
		BitDepth:   16,
		Codec:      "pcm_s16le",
		Filters:    "highpass=f=100,lowpass=f=6000,volume=1.1",
	},
	QualityHigh: {
		Name:       QualityHigh,
		SampleRate: 48000,
		BitDepth:   24,
		Codec:      "pcm_s24le",
		Filters:    "highpass=f=80,lowpass=f=8000,volume=1.2,compand=0.3|0.3:1|1:-90/-60/-40/-30/-20/-10/-3/0:6:0:-90:0.2",
	},
}

// Qualities lists the preset names from fastest to best.
func Qualities() []Quality {
	return []Quality{QualityLow, QualityMedium, QualityHigh}
}

// ParseQuality resolves a user-supplied quality label.
func ParseQuality(value string) (Quality, error) {
	cleaned := Quality(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := presets[cleaned]; ok {
		return cleaned, nil
	}
	return "", services.Wrap(services.ErrUnsupportedFormat, "extraction", "parse quality",
		fmt.Sprintf("quality %q is not one of low, medium, high", strings.TrimSpace(value)), nil)
}

// PresetFor returns the preset behind a quality label.
func PresetFor(quality Quality) (Preset, error) {
	preset, ok := presets[quality]
	if !ok {
		return Preset{}, services.Wrap(services.ErrUnsupportedFormat, "extraction", "resolve preset",
			fmt.Sprintf("quality %q is not one of low, medium, high", string(quality)), nil)
	}
	return preset, nil
}
