package engine

import "study_diagnostic_backend/internal/model"

// BuildResult runs scoring, flag inference and recommendation selection,
// then packs the outputs with the raw answers into one DiagnosticResult. This is the only external contract of the engine;
// persistence, export and presentation consume the returned value and never
// reach back into the stages.
func BuildResult(cfg Config, coreQuestions, metaQuestions []model.Question, videos []model.VideoRec, articles []model.ArticleRec, answers model.Answers) (model.DiagnosticResult, error) {
	set, err := ComputeScores(cfg, coreQuestions, metaQuestions, answers)
	if err != nil {
		return model.DiagnosticResult{}, err
	}

	allQuestions := make([]model.Question, 0, len(coreQuestions)+len(metaQuestions))
	allQuestions = append(allQuestions, coreQuestions...)
	allQuestions = append(allQuestions, metaQuestions...)

	flags, err := ComputeFlags(cfg, set.Scores, set.MetaScores, answers, allQuestions)
	if err != nil {
		return model.DiagnosticResult{}, err
	}

	return model.DiagnosticResult{
		Answers:             answers,
		Scores:              set.Scores,
		MetaScores:          set.MetaScores,
		Overall:             set.Overall,
		Flags:               FlagStrings(flags),
		OneThing:            SelectOneThing(cfg, flags, set.Scores),
		DomainActions:       SelectDomainActions(set.Scores),
		RecommendedVideos:   RecommendVideos(cfg, videos, flags),
		RecommendedArticles: RecommendArticles(cfg, articles, flags),
	}, nil
}
