package whisper

import (
	"fmt"
	"strings"

	"transcriptor/internal/services"
)

// ModelSize names a pretrained recognition model variant. Larger models
// trade inference speed for accuracy.
type ModelSize string

const (
	ModelTiny    ModelSize = "tiny"
	ModelBase    ModelSize = "base"
	ModelSmall   ModelSize = "small"
	ModelMedium  ModelSize = "medium"
	ModelLarge   ModelSize = "large"
	ModelLargeV2 ModelSize = "large-v2"
	ModelLargeV3 ModelSize = "large-v3"
)

// ModelInfo describes one model variant for display purposes.
type ModelInfo struct {
	Size          ModelSize
	Parameters    string
	VRAM          string
	RelativeSpeed string
}

var modelTable = []ModelInfo{
	{ModelTiny, "39M", "~1 GB", "~10x"},
	{ModelBase, "74M", "~1 GB", "~7x"},
	{ModelSmall, "244M", "~2 GB", "~4x"},
	{ModelMedium, "769M", "~5 GB", "~2x"},
	{ModelLarge, "1550M", "~10 GB", "1x"},
	{ModelLargeV2, "1550M", "~10 GB", "1x"},
	{ModelLargeV3, "1550M", "~10 GB", "1x"},
}

// Models lists the known model variants from smallest to largest.
func Models() []ModelInfo {
	infos := make([]ModelInfo, len(modelTable))
	copy(infos, modelTable)
	return infos
}

// Sizes lists the valid model size names in table order.
func Sizes() []ModelSize {
	sizes := make([]ModelSize, 0, len(modelTable))
	for _, info := range modelTable {
		sizes = append(sizes, info.Size)
	}
	return sizes
}

// ParseModelSize resolves a user-supplied model size name.
func ParseModelSize(value string) (ModelSize, error) {
	cleaned := ModelSize(strings.ToLower(strings.TrimSpace(value)))
	for _, info := range modelTable {
		if info.Size == cleaned {
			return cleaned, nil
		}
	}
	return "", services.Wrap(services.ErrUnsupportedFormat, "transcription", "parse model",
		fmt.Sprintf("model %q is not one of tiny, base, small, medium, large, large-v2, large-v3", strings.TrimSpace(value)), nil)
}
