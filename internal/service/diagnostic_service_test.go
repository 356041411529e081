package service

import (
	"testing"

	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/engine"
	"study_diagnostic_backend/internal/model"
)

func TestBuildEngineConfigDefaults(t *testing.T) {
	got := BuildEngineConfig(config.DiagnosticConfig{})
	want := engine.DefaultConfig()

	if got.MaxVideos != want.MaxVideos || got.MaxArticles != want.MaxArticles {
		t.Errorf("truncation limits = (%d, %d), want (%d, %d)",
			got.MaxVideos, got.MaxArticles, want.MaxVideos, want.MaxArticles)
	}
	if got.Thresholds != want.Thresholds {
		t.Errorf("thresholds = %+v, want %+v", got.Thresholds, want.Thresholds)
	}
	if got.LinearNotesLowID != want.LinearNotesLowID || got.LinearNotesHighID != want.LinearNotesHighID {
		t.Errorf("note question ids = (%s, %s), want (%s, %s)",
			got.LinearNotesLowID, got.LinearNotesHighID, want.LinearNotesLowID, want.LinearNotesHighID)
	}
	if got.DomainWeights[model.DomainOverlearning] != want.DomainWeights[model.DomainOverlearning] {
		t.Errorf("overlearning weight = %v, want %v",
			got.DomainWeights[model.DomainOverlearning], want.DomainWeights[model.DomainOverlearning])
	}
}

func TestBuildEngineConfigOverrides(t *testing.T) {
	got := BuildEngineConfig(config.DiagnosticConfig{
		DomainWeights: map[string]float64{model.DomainPriming: 2},
		Thresholds:    map[string]int{"low_priming": 40, "big_picture": 70},
		MaxVideos:     5,
		MaxArticles:   2,
		FocusPriority: []string{"low_retrieval", "low_priming"},
		NoteLowID:     "Q99",
		NoteHighID:    "Q98",
	})

	if got.DomainWeights[model.DomainPriming] != 2 {
		t.Errorf("priming weight = %v, want 2", got.DomainWeights[model.DomainPriming])
	}
	if got.Thresholds.LowPriming != 40 {
		t.Errorf("LowPriming = %d, want 40", got.Thresholds.LowPriming)
	}
	if got.Thresholds.BigPicture != 70 {
		t.Errorf("BigPicture = %d, want 70", got.Thresholds.BigPicture)
	}
	// untouched thresholds keep defaults
	if def := engine.DefaultConfig().Thresholds.LowRetrieval; got.Thresholds.LowRetrieval != def {
		t.Errorf("LowRetrieval = %d, want default %d", got.Thresholds.LowRetrieval, def)
	}
	if got.MaxVideos != 5 || got.MaxArticles != 2 {
		t.Errorf("truncation limits = (%d, %d), want (5, 2)", got.MaxVideos, got.MaxArticles)
	}
	if len(got.FocusPriority) != 2 || got.FocusPriority[0] != engine.FlagLowRetrieval {
		t.Errorf("FocusPriority = %v", got.FocusPriority)
	}
	if got.LinearNotesLowID != "Q99" || got.LinearNotesHighID != "Q98" {
		t.Errorf("note ids = (%s, %s), want (Q99, Q98)", got.LinearNotesLowID, got.LinearNotesHighID)
	}
}

func TestFillDefaults(t *testing.T) {
	questions := []model.Question{
		{ID: "Q1", Type: model.Likert5, Domain: model.DomainPriming},
		{ID: "Q2", Type: model.YesNoMaybe, Domain: model.DomainPriming},
		{ID: "Q3", Type: model.Likert5, Domain: model.DomainEncoding},
	}

	filled := fillDefaults(questions, model.Answers{"Q1": 5})

	if got := filled["Q1"]; got != 5 {
		t.Errorf("Q1 = %v, want the provided 5", got)
	}
	if got := filled["Q2"]; got != "maybe" {
		t.Errorf("Q2 = %v, want default maybe", got)
	}
	if got := filled["Q3"]; got != 3 {
		t.Errorf("Q3 = %v, want default 3", got)
	}
}

func TestFillDefaultsDoesNotMutateInput(t *testing.T) {
	questions := []model.Question{
		{ID: "Q1", Type: model.Likert5, Domain: model.DomainPriming},
	}
	original := model.Answers{}

	fillDefaults(questions, original)

	if len(original) != 0 {
		t.Errorf("input answers mutated: %v", original)
	}
}
