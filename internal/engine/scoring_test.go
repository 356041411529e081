package engine

import (
	"errors"
	"testing"

	"study_diagnostic_backend/internal/model"
)

func likertQ(id, domain string, reverse bool) model.Question {
	return model.Question{ID: id, Text: id, Type: model.Likert5, Domain: domain, Reverse: reverse}
}

func ynmQ(id, domain string, reverse bool) model.Question {
	return model.Question{ID: id, Text: id, Type: model.YesNoMaybe, Domain: domain, Reverse: reverse}
}

func TestScoreAnswerLikert(t *testing.T) {
	tests := []struct {
		name    string
		answer  interface{}
		reverse bool
		want    int
	}{
		{"one maps to zero", 1, false, 0},
		{"two maps to 25", 2, false, 25},
		{"three maps to 50", 3, false, 50},
		{"four maps to 75", 4, false, 75},
		{"five maps to 100", 5, false, 100},
		{"one reversed maps to 100", 1, true, 100},
		{"three reversed maps to 50", 3, true, 50},
		{"five reversed maps to zero", 5, true, 0},
		{"json float is accepted", float64(4), false, 75},
		{"numeric string is coerced", "4", false, 75},
		{"padded numeric string is coerced", " 2 ", false, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswer(likertQ("Q1", "priming", tt.reverse), tt.answer)
			if err != nil {
				t.Fatalf("ScoreAnswer(%v) unexpected error: %v", tt.answer, err)
			}
			if got != tt.want {
				t.Errorf("ScoreAnswer(%v) = %d, want %d", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreAnswerLikertReverseComplement(t *testing.T) {
	for a := 1; a <= 5; a++ {
		plain, err := ScoreAnswer(likertQ("Q1", "priming", false), a)
		if err != nil {
			t.Fatalf("plain ScoreAnswer(%d): %v", a, err)
		}
		reversed, err := ScoreAnswer(likertQ("Q1", "priming", true), a)
		if err != nil {
			t.Fatalf("reversed ScoreAnswer(%d): %v", a, err)
		}
		if reversed != 100-plain {
			t.Errorf("answer %d: reversed = %d, want %d", a, reversed, 100-plain)
		}
	}
}

func TestScoreAnswerYNM(t *testing.T) {
	tests := []struct {
		name    string
		answer  interface{}
		reverse bool
		want    int
	}{
		{"yes maps to zero", "yes", false, 0},
		{"maybe maps to 50", "maybe", false, 50},
		{"no maps to 100", "no", false, 100},
		{"case insensitive", "YES", false, 0},
		{"mixed case maybe", "Maybe", false, 50},
		{"yes reversed maps to 100", "yes", true, 100},
		{"maybe reversed maps to 50", "maybe", true, 50},
		{"no reversed maps to zero", "no", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswer(ynmQ("Q2", "encoding", tt.reverse), tt.answer)
			if err != nil {
				t.Fatalf("ScoreAnswer(%v) unexpected error: %v", tt.answer, err)
			}
			if got != tt.want {
				t.Errorf("ScoreAnswer(%v) = %d, want %d", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreAnswerInvalid(t *testing.T) {
	tests := []struct {
		name     string
		question model.Question
		answer   interface{}
	}{
		{"likert below range", likertQ("Q1", "priming", false), 0},
		{"likert above range", likertQ("Q1", "priming", false), 6},
		{"likert non numeric", likertQ("Q1", "priming", false), "often"},
		{"likert fractional", likertQ("Q1", "priming", false), 2.5},
		{"likert nil", likertQ("Q1", "priming", false), nil},
		{"ynm unknown token", ynmQ("Q2", "encoding", false), "unsure"},
		{"unknown question type", model.Question{ID: "Q3", Type: "slider", Domain: "priming"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScoreAnswer(tt.question, tt.answer)
			if !errors.Is(err, ErrInvalidAnswer) {
				t.Errorf("ScoreAnswer(%v) error = %v, want ErrInvalidAnswer", tt.answer, err)
			}
		})
	}
}

func TestComputeScoresForQuestions(t *testing.T) {
	questions := []model.Question{
		likertQ("Q1", "priming", false),
		likertQ("Q2", "priming", false),
		ynmQ("Q3", "retrieval", false),
		likertQ("Q4", "encoding", false),
	}

	t.Run("mean per domain, unanswered domains omitted", func(t *testing.T) {
		answers := model.Answers{"Q1": 5, "Q2": 2, "Q3": "no"}
		scores, err := ComputeScoresForQuestions(questions, answers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// (100+25)/2 rounds to 63
		if got := scores["priming"]; got != 63 {
			t.Errorf("priming = %d, want 63", got)
		}
		if got := scores["retrieval"]; got != 100 {
			t.Errorf("retrieval = %d, want 100", got)
		}
		if _, ok := scores["encoding"]; ok {
			t.Error("encoding present despite no answered questions")
		}
	})

	t.Run("no answers yields empty map, not zeroes", func(t *testing.T) {
		scores, err := ComputeScoresForQuestions(questions, model.Answers{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scores) != 0 {
			t.Errorf("scores = %v, want empty", scores)
		}
	})

	t.Run("invalid answer fails the whole pass", func(t *testing.T) {
		answers := model.Answers{"Q1": 5, "Q2": 9}
		_, err := ComputeScoresForQuestions(questions, answers)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("error = %v, want ErrInvalidAnswer", err)
		}
	})
}

func TestComputeOverallScore(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		scores model.Scores
		want   int
	}{
		{"empty scores", model.Scores{}, 0},
		{"single domain", model.Scores{"priming": 80}, 80},
		// (50*1 + 100*0.8) / 1.8 = 72.2 -> 72
		{"overlearning discounted", model.Scores{"priming": 50, "overlearning": 100}, 72},
		{"unlisted domain defaults to weight 1", model.Scores{"priming": 40, "mystery": 60}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeOverallScore(cfg, tt.scores); got != tt.want {
				t.Errorf("ComputeOverallScore(%v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestComputeScoresMetaNeverFeedsOverall(t *testing.T) {
	cfg := DefaultConfig()
	core := []model.Question{likertQ("Q1", "priming", false)}
	meta := []model.Question{likertQ("M1", "mindset_fixed", false)}
	answers := model.Answers{"Q1": 5, "M1": 1}

	set, err := ComputeScores(cfg, core, meta, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Overall != 100 {
		t.Errorf("overall = %d, want 100 (meta scores must not contribute)", set.Overall)
	}
	if set.MetaScores["mindset_fixed"] != 0 {
		t.Errorf("mindset_fixed = %d, want 0", set.MetaScores["mindset_fixed"])
	}
}
