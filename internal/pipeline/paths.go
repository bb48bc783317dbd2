package pipeline

import (
	"path/filepath"
	"strings"
)

// audioExtensions are the container extensions treated as already-extracted
// audio when ffprobe cannot be consulted.
var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".opus": {},
	".wma":  {},
}

// IsAudioPath reports whether the path's extension names an audio container.
func IsAudioPath(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Paths holds every file location one run reads or writes. The set is
// computed once before any stage starts and never mutated afterward.
type Paths struct {
	Input      string
	Audio      string
	Transcript string
}

// DerivePaths applies the naming convention: input name.ext produces
// name_audio.wav, and the transcript name always derives from the audio
// name (name_audio_transcript.<ext>) so a retried transcription lands next
// to the audio it consumed. Explicit overrides win; OutputDir redirects
// derived paths only.
func DerivePaths(input string, opts Options) Paths {
	outputDir := strings.TrimSpace(opts.OutputDir)

	audio := strings.TrimSpace(opts.AudioOutput)
	if audio == "" {
		if opts.SkipExtraction {
			audio = input
		} else {
			dir := filepath.Dir(input)
			if outputDir != "" {
				dir = outputDir
			}
			stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			audio = filepath.Join(dir, stem+"_audio.wav")
		}
	}

	transcriptPath := strings.TrimSpace(opts.TranscriptOutput)
	if transcriptPath == "" {
		dir := filepath.Dir(audio)
		if outputDir != "" {
			dir = outputDir
		}
		stem := strings.TrimSuffix(filepath.Base(audio), filepath.Ext(audio))
		transcriptPath = filepath.Join(dir, stem+"_transcript."+opts.Format.Extension())
	}

	return Paths{Input: input, Audio: audio, Transcript: transcriptPath}
}
