package engine

import "study_diagnostic_backend/internal/model"

// Thresholds are the cut-offs flag inference compares scores against.
// A "low" flag fires when the score is strictly below its threshold; the
// overlearning flag fires when overlearning is strictly above
// OverlearningExcess while priming sits below OverlearningPriming.
type Thresholds struct {
	LowPriming         int `mapstructure:"low_priming"`
	LowRetrieval       int `mapstructure:"low_retrieval"`
	LowEncoding        int `mapstructure:"low_encoding"`
	WeakReference      int `mapstructure:"weak_reference"`
	OverlearningExcess int `mapstructure:"overlearning_excess"`
	OverlearningPrimed int `mapstructure:"overlearning_primed"`
	FixedMindset       int `mapstructure:"fixed_mindset"`
	LowResourcefulness int `mapstructure:"low_resourcefulness"`
	BigPicture         int `mapstructure:"big_picture"`
}

// Config carries every tunable constant the pipeline depends on. It is built
// once (DefaultConfig, optionally overridden from app config) and passed
// explicitly into each stage so tests can substitute alternate values.
type Config struct {
	DomainWeights Weights
	Thresholds    Thresholds
	MaxVideos     int
	MaxArticles   int

	// FocusPriority orders SelectOneThing's waterfall, highest first.
	FocusPriority []Flag

	// LinearNotesLowID / LinearNotesHighID are the two question ids whose raw
	// answers are re-scored to detect linear note-taking: the first flags on a
	// per-answer score below 50, the second on a score above 50.
	LinearNotesLowID  string
	LinearNotesHighID string
}

// Weights maps domain name to its weight in the overall score. Domains not
// listed default to weight 1.
type Weights map[string]float64

// DefaultConfig returns the canonical rule set.
func DefaultConfig() Config {
	return Config{
		DomainWeights: Weights{
			model.DomainPriming:      1,
			model.DomainRetrieval:    1,
			model.DomainEncoding:     1,
			model.DomainReference:    1,
			model.DomainOverlearning: 0.8,
		},
		Thresholds: Thresholds{
			LowPriming:         50,
			LowRetrieval:       60,
			LowEncoding:        60,
			WeakReference:      50,
			OverlearningExcess: 60,
			OverlearningPrimed: 60,
			FixedMindset:       60,
			LowResourcefulness: 60,
			BigPicture:         60,
		},
		MaxVideos:   3,
		MaxArticles: 4,
		FocusPriority: []Flag{
			FlagLowPriming,
			FlagLowRetrieval,
			FlagWeakReference,
			FlagRiskFixedMindset,
		},
		LinearNotesLowID:  "Q15",
		LinearNotesHighID: "Q17",
	}
}
