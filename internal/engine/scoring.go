package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"study_diagnostic_backend/internal/model"
)

// ErrInvalidAnswer is returned when an answer value falls outside its
// question type's valid domain. Scoring fails fast on the first such value;
// nothing is ever clamped or defaulted here.
var ErrInvalidAnswer = errors.New("invalid answer")

var ynmValues = map[string]float64{
	"yes":   0,
	"maybe": 0.5,
	"no":    1,
}

// ScoreAnswer normalises one raw answer to a 0-100 score.
//
// likert5 answers must be integers 1..5 (numeric strings are coerced) and
// map linearly via (a-1)/4. ynm answers map yes->0, maybe->0.5, no->1,
// case-insensitively. Reverse-scored questions invert the normalised value
// before rounding, so reversed scores are exactly 100 minus the plain score.
func ScoreAnswer(q model.Question, answer interface{}) (int, error) {
	var value float64

	switch q.Type {
	case model.Likert5:
		n, err := likertValue(answer)
		if err != nil {
			return 0, fmt.Errorf("%w: question %s: likert5 answer %v", ErrInvalidAnswer, q.ID, answer)
		}
		value = float64(n-1) / 4

	case model.YesNoMaybe:
		key := strings.ToLower(fmt.Sprintf("%v", answer))
		v, ok := ynmValues[key]
		if !ok {
			return 0, fmt.Errorf("%w: question %s: ynm answer %q", ErrInvalidAnswer, q.ID, answer)
		}
		value = v

	default:
		return 0, fmt.Errorf("%w: question %s: unknown question type %q", ErrInvalidAnswer, q.ID, q.Type)
	}

	if q.Reverse {
		value = 1 - value
	}

	return int(math.Round(value * 100)), nil
}

func likertValue(answer interface{}) (int, error) {
	var n int
	switch a := answer.(type) {
	case int:
		n = a
	case float64:
		// JSON numbers decode as float64; only whole values are valid.
		if a != math.Trunc(a) {
			return 0, ErrInvalidAnswer
		}
		n = int(a)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return 0, ErrInvalidAnswer
		}
		n = parsed
	default:
		return 0, ErrInvalidAnswer
	}

	if n < 1 || n > 5 {
		return 0, ErrInvalidAnswer
	}
	return n, nil
}

// ComputeScoresForQuestions aggregates answered questions into per-domain
// rounded means. Domains with no answered questions are omitted from the
// result entirely; callers must treat absence explicitly rather than reading
// a missing domain as zero.
func ComputeScoresForQuestions(questions []model.Question, answers model.Answers) (model.Scores, error) {
	sums := make(map[string]int)
	counts := make(map[string]int)

	for _, q := range questions {
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}

		score, err := ScoreAnswer(q, ans)
		if err != nil {
			return nil, err
		}
		sums[q.Domain] += score
		counts[q.Domain]++
	}

	scores := make(model.Scores, len(sums))
	for d, sum := range sums {
		scores[d] = int(math.Round(float64(sum) / float64(counts[d])))
	}
	return scores, nil
}

// ComputeOverallScore weights the already-computed domain scores into one
// 0-100 value. Only domains present in scores contribute; unlisted domains
// get weight 1. An empty scores map yields 0.
func ComputeOverallScore(cfg Config, scores model.Scores) int {
	var weightedSum, totalWeight float64

	for d, s := range scores {
		w, ok := cfg.DomainWeights[d]
		if !ok {
			w = 1
		}
		weightedSum += float64(s) * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(weightedSum / totalWeight))
}

// ScoreSet bundles the outputs of one scoring pass.
type ScoreSet struct {
	Scores     model.Scores
	MetaScores model.Scores
	Overall    int
}

// ComputeScores scores the core and meta rosters independently and derives
// the overall score strictly from the core domains. Meta scores never feed
// the weighted overall; they exist to drive the meta flags.
func ComputeScores(cfg Config, coreQuestions, metaQuestions []model.Question, answers model.Answers) (ScoreSet, error) {
	scores, err := ComputeScoresForQuestions(coreQuestions, answers)
	if err != nil {
		return ScoreSet{}, err
	}

	metaScores, err := ComputeScoresForQuestions(metaQuestions, answers)
	if err != nil {
		return ScoreSet{}, err
	}

	return ScoreSet{
		Scores:     scores,
		MetaScores: metaScores,
		Overall:    ComputeOverallScore(cfg, scores),
	}, nil
}
