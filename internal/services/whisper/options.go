package whisper

// Options are the decoding parameters forwarded to the recognition model.
// The defaults favor deterministic, conservative output on CPU.
type Options struct {
	Temperature               float64
	BestOf                    int
	BeamSize                  int
	Patience                  float64
	ConditionOnPreviousText   bool
	CompressionRatioThreshold float64
	LogprobThreshold          float64
	NoSpeechThreshold         float64
	InitialPrompt             string
	NormalizeText             bool
}

// DefaultOptions returns the decoding parameters used when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Temperature:               0.0,
		BestOf:                    5,
		BeamSize:                  5,
		Patience:                  1.0,
		ConditionOnPreviousText:   true,
		CompressionRatioThreshold: 2.4,
		LogprobThreshold:          -1.0,
		NoSpeechThreshold:         0.6,
		NormalizeText:             true,
	}
}
