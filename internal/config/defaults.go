package config

const (
	defaultQuality       = "high"
	defaultModel         = "large-v3"
	defaultLanguage      = "tr"
	defaultFormat        = "txt"
	defaultDevice        = "auto"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultWhisperBinary = "whisper"
	defaultNvidiaSMI     = "nvidia-smi"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultSettleSeconds = 2

	defaultTemperature               = 0.0
	defaultBestOf                    = 5
	defaultBeamSize                  = 5
	defaultPatience                  = 1.0
	defaultCompressionRatioThreshold = 2.4
	defaultLogprobThreshold          = -1.0
	defaultNoSpeechThreshold         = 0.6
)

func defaultWatchExtensions() []string {
	return []string{".mp4", ".mkv", ".avi", ".mov", ".webm", ".m4v", ".mpg", ".mpeg", ".wmv", ".flv"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Quality:       defaultQuality,
			Model:         defaultModel,
			Language:      defaultLanguage,
			Format:        defaultFormat,
			Device:        defaultDevice,
			NormalizeText: true,
		},
		Tools: Tools{
			FFmpeg:    defaultFFmpegBinary,
			FFprobe:   defaultFFprobeBinary,
			Whisper:   defaultWhisperBinary,
			NvidiaSMI: defaultNvidiaSMI,
		},
		Decode: Decode{
			Temperature:               defaultTemperature,
			BestOf:                    defaultBestOf,
			BeamSize:                  defaultBeamSize,
			Patience:                  defaultPatience,
			ConditionOnPreviousText:   true,
			CompressionRatioThreshold: defaultCompressionRatioThreshold,
			LogprobThreshold:          defaultLogprobThreshold,
			NoSpeechThreshold:         defaultNoSpeechThreshold,
		},
		Watch: Watch{
			SettleSeconds: defaultSettleSeconds,
			Extensions:    defaultWatchExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
