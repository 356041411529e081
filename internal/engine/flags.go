package engine

import "study_diagnostic_backend/internal/model"

// Flag is a qualitative diagnostic signal derived from score thresholds or
// specific answer patterns. The vocabulary is closed; SelectOneThing's
// waterfall matches against these constants.
type Flag string

const (
	FlagLowPriming         Flag = "low_priming"
	FlagLowRetrieval       Flag = "low_retrieval"
	FlagLowEncoding        Flag = "low_encoding"
	FlagWeakReference      Flag = "weak_reference"
	FlagOverlearningEarly  Flag = "overlearning_early"
	FlagLinearNotes        Flag = "linear_notes"
	FlagRiskFixedMindset   Flag = "risk_fixed_mindset"
	FlagLowResourcefulness Flag = "low_resourcefulness"
	FlagNeedsBigPicture    Flag = "needs_big_picture"
)

// scoreOr reads a domain score with an explicit default for absence. Skill
// domains default to 100 (assume healthy until proven otherwise) while the
// overlearning check defaults to 0 (assume no excess); callers pick the
// default, this helper just keeps the absence handling in one place.
func scoreOr(scores model.Scores, domain string, def int) int {
	if s, ok := scores[domain]; ok {
		return s
	}
	return def
}

// ComputeFlags evaluates the fixed threshold table against core and meta
// scores, plus the two note-taking pattern checks that re-score raw answers.
// An invalid answer to either note-pattern question fails the whole pass
// with ErrInvalidAnswer, the same contract scoring has; an unanswered one
// just skips its check. The result is deduplicated; evaluation order is
// fixed for reproducibility but carries no meaning.
func ComputeFlags(cfg Config, scores, metaScores model.Scores, answers model.Answers, allQuestions []model.Question) ([]Flag, error) {
	var flags []Flag
	t := cfg.Thresholds

	if scoreOr(scores, model.DomainPriming, 100) < t.LowPriming {
		flags = append(flags, FlagLowPriming)
	}
	if scoreOr(scores, model.DomainRetrieval, 100) < t.LowRetrieval {
		flags = append(flags, FlagLowRetrieval)
	}
	if scoreOr(scores, model.DomainEncoding, 100) < t.LowEncoding {
		flags = append(flags, FlagLowEncoding)
	}
	if scoreOr(scores, model.DomainReference, 100) < t.WeakReference {
		flags = append(flags, FlagWeakReference)
	}
	if scoreOr(scores, model.DomainOverlearning, 0) > t.OverlearningExcess &&
		scoreOr(scores, model.DomainPriming, 100) < t.OverlearningPrimed {
		flags = append(flags, FlagOverlearningEarly)
	}

	// Note-taking behaviour: two fixed questions are re-scored individually
	// because the pattern they detect is orthogonal to the domain averages.
	// An unanswered question simply skips its check.
	score, ok, err := answeredQuestionScore(cfg.LinearNotesLowID, answers, allQuestions)
	if err != nil {
		return nil, err
	}
	if ok && score < 50 {
		flags = append(flags, FlagLinearNotes)
	}
	score, ok, err = answeredQuestionScore(cfg.LinearNotesHighID, answers, allQuestions)
	if err != nil {
		return nil, err
	}
	if ok && score > 50 {
		flags = append(flags, FlagLinearNotes)
	}

	if scoreOr(metaScores, model.DomainMindsetFixed, 100) < t.FixedMindset {
		flags = append(flags, FlagRiskFixedMindset)
	}
	if scoreOr(metaScores, model.DomainResourcefulness, 100) < t.LowResourcefulness {
		flags = append(flags, FlagLowResourcefulness)
	}
	if scoreOr(metaScores, model.DomainBigPicture, 100) < t.BigPicture {
		flags = append(flags, FlagNeedsBigPicture)
	}

	return dedupeFlags(flags), nil
}

// answeredQuestionScore re-scores one answered question by id. A missing
// answer or a question absent from the roster reports ok=false; an answer
// that fails scoring propagates the error.
func answeredQuestionScore(id string, answers model.Answers, questions []model.Question) (int, bool, error) {
	ans, ok := answers[id]
	if !ok {
		return 0, false, nil
	}
	for _, q := range questions {
		if q.ID == id {
			score, err := ScoreAnswer(q, ans)
			if err != nil {
				return 0, false, err
			}
			return score, true, nil
		}
	}
	return 0, false, nil
}

func dedupeFlags(flags []Flag) []Flag {
	seen := make(map[Flag]bool, len(flags))
	out := flags[:0]
	for _, f := range flags {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// HasFlag reports whether f is present in flags.
func HasFlag(flags []Flag, f Flag) bool {
	for _, x := range flags {
		if x == f {
			return true
		}
	}
	return false
}

// FlagStrings converts a flag slice to plain strings for serialisation.
func FlagStrings(flags []Flag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}
