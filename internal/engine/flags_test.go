package engine

import (
	"errors"
	"testing"

	"study_diagnostic_backend/internal/model"
)

func flagSet(flags []Flag) map[Flag]bool {
	m := make(map[Flag]bool, len(flags))
	for _, f := range flags {
		m[f] = true
	}
	return m
}

func mustFlags(t *testing.T, flags []Flag, err error) []Flag {
	t.Helper()
	if err != nil {
		t.Fatalf("ComputeFlags: %v", err)
	}
	return flags
}

func TestComputeFlagsThresholds(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		scores     model.Scores
		metaScores model.Scores
		want       []Flag
		absent     []Flag
	}{
		{
			name:   "low priming only, absent domains default healthy",
			scores: model.Scores{"priming": 40},
			want:   []Flag{FlagLowPriming},
			absent: []Flag{FlagLowRetrieval, FlagLowEncoding, FlagWeakReference, FlagOverlearningEarly},
		},
		{
			name:   "priming exactly at threshold does not fire",
			scores: model.Scores{"priming": 50},
			absent: []Flag{FlagLowPriming},
		},
		{
			name:   "retrieval and encoding below 60",
			scores: model.Scores{"retrieval": 59, "encoding": 59},
			want:   []Flag{FlagLowRetrieval, FlagLowEncoding},
		},
		{
			name:   "overlearning early needs both conditions",
			scores: model.Scores{"overlearning": 70, "priming": 55},
			want:   []Flag{FlagOverlearningEarly},
		},
		{
			name:   "overlearning high but priming healthy",
			scores: model.Scores{"overlearning": 70, "priming": 80},
			absent: []Flag{FlagOverlearningEarly},
		},
		{
			name:   "overlearning absent defaults to no excess",
			scores: model.Scores{"priming": 40},
			absent: []Flag{FlagOverlearningEarly},
		},
		{
			name:       "meta flags",
			metaScores: model.Scores{"mindset_fixed": 30, "resourcefulness": 59, "big_picture": 10},
			want:       []Flag{FlagRiskFixedMindset, FlagLowResourcefulness, FlagNeedsBigPicture},
		},
		{
			name:       "meta at threshold does not fire",
			metaScores: model.Scores{"mindset_fixed": 60, "resourcefulness": 60, "big_picture": 60},
			absent:     []Flag{FlagRiskFixedMindset, FlagLowResourcefulness, FlagNeedsBigPicture},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ComputeFlags(cfg, tt.scores, tt.metaScores, model.Answers{}, nil)
			got := flagSet(mustFlags(t, flags, err))
			for _, f := range tt.want {
				if !got[f] {
					t.Errorf("missing flag %s (got %v)", f, got)
				}
			}
			for _, f := range tt.absent {
				if got[f] {
					t.Errorf("unexpected flag %s", f)
				}
			}
		})
	}
}

func TestComputeFlagsLinearNotes(t *testing.T) {
	cfg := DefaultConfig()
	roster := []model.Question{
		likertQ("Q15", "reference", false),
		likertQ("Q17", "reference", false),
	}

	tests := []struct {
		name    string
		answers model.Answers
		want    bool
	}{
		{"low Q15 score fires", model.Answers{"Q15": 1}, true},
		{"high Q15 score does not fire", model.Answers{"Q15": 5}, false},
		{"Q15 exactly 50 does not fire", model.Answers{"Q15": 3}, false},
		{"high Q17 score fires", model.Answers{"Q17": 5}, true},
		{"low Q17 score does not fire", model.Answers{"Q17": 1}, false},
		{"unanswered checks are skipped", model.Answers{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFlags(cfg, model.Scores{}, model.Scores{}, tt.answers, roster)
			flags := mustFlags(t, got, err)
			if got := HasFlag(flags, FlagLinearNotes); got != tt.want {
				t.Errorf("linear_notes = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("both triggers yield a single entry", func(t *testing.T) {
		got, err := ComputeFlags(cfg, model.Scores{}, model.Scores{}, model.Answers{"Q15": 1, "Q17": 5}, roster)
		flags := mustFlags(t, got, err)
		count := 0
		for _, f := range flags {
			if f == FlagLinearNotes {
				count++
			}
		}
		if count != 1 {
			t.Errorf("linear_notes appears %d times, want 1", count)
		}
	})

	t.Run("invalid answer fails the pass", func(t *testing.T) {
		_, err := ComputeFlags(cfg, model.Scores{}, model.Scores{}, model.Answers{"Q15": "often"}, roster)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("err = %v, want ErrInvalidAnswer", err)
		}
	})

	t.Run("question missing from roster is skipped", func(t *testing.T) {
		got, err := ComputeFlags(cfg, model.Scores{}, model.Scores{}, model.Answers{"Q15": 1}, nil)
		flags := mustFlags(t, got, err)
		if HasFlag(flags, FlagLinearNotes) {
			t.Error("linear_notes fired without the question definition")
		}
	})
}

func TestComputeFlagsNoDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	got, err := ComputeFlags(cfg,
		model.Scores{"priming": 10, "retrieval": 10, "encoding": 10, "reference": 10},
		model.Scores{"mindset_fixed": 10, "resourcefulness": 10, "big_picture": 10},
		model.Answers{"Q15": 1, "Q17": 5},
		[]model.Question{likertQ("Q15", "reference", false), likertQ("Q17", "reference", false)},
	)
	flags := mustFlags(t, got, err)

	seen := make(map[Flag]int)
	for _, f := range flags {
		seen[f]++
	}
	for f, n := range seen {
		if n > 1 {
			t.Errorf("flag %s appears %d times", f, n)
		}
	}
}
