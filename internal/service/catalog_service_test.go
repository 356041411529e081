package service

import (
	"os"
	"path/filepath"
	"testing"

	"study_diagnostic_backend/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogFiltersInvalidItems(t *testing.T) {
	path := writeTemp(t, "questions.json", `[
		{"id": "Q1", "text": "Valid question", "type": "likert5", "domain": "priming"},
		{"id": "", "text": "Missing id", "type": "likert5", "domain": "priming"},
		{"id": "Q3", "text": "Unknown type", "type": "slider", "domain": "priming"},
		{"id": "Q4", "text": "Valid ynm", "type": "ynm", "domain": "retrieval", "reverse": true}
	]`)

	var questions []model.Question
	if err := loadCatalog(path, &questions, validQuestion); err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("kept %d questions, want 2: %+v", len(questions), questions)
	}
	if questions[0].ID != "Q1" || questions[1].ID != "Q4" {
		t.Errorf("kept wrong items: %+v", questions)
	}
	if !questions[1].Reverse {
		t.Error("reverse attribute lost during load")
	}
}

func TestLoadCatalogRejectsMalformedJSON(t *testing.T) {
	path := writeTemp(t, "broken.json", `{"not": "an array"}`)

	var questions []model.Question
	if err := loadCatalog(path, &questions, validQuestion); err == nil {
		t.Fatal("expected error for non-array payload")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	var questions []model.Question
	err := loadCatalog(filepath.Join(t.TempDir(), "nope.json"), &questions, validQuestion)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidVideo(t *testing.T) {
	base := model.VideoRec{
		ID: "v1", Title: "T", URL: "u", MapsTo: []string{"low_priming"}, DurationMinutes: 5,
	}

	cases := []struct {
		name   string
		mutate func(*model.VideoRec)
		want   bool
	}{
		{"valid", func(v *model.VideoRec) {}, true},
		{"empty maps_to allowed", func(v *model.VideoRec) { v.MapsTo = []string{} }, true},
		{"nil maps_to", func(v *model.VideoRec) { v.MapsTo = nil }, false},
		{"missing url", func(v *model.VideoRec) { v.URL = "" }, false},
		{"zero duration", func(v *model.VideoRec) { v.DurationMinutes = 0 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := base
			c.mutate(&v)
			if got := validVideo(v); got != c.want {
				t.Errorf("validVideo = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValidArticle(t *testing.T) {
	base := model.ArticleRec{
		ID: "a1", Title: "T", URL: "u", MapsTo: []string{"low_retrieval"}, EstMinutes: 10,
	}

	if !validArticle(base) {
		t.Error("base article should be valid")
	}
	noMaps := base
	noMaps.MapsTo = nil
	if validArticle(noMaps) {
		t.Error("nil maps_to should be invalid")
	}
	noEst := base
	noEst.EstMinutes = 0
	if validArticle(noEst) {
		t.Error("zero est_minutes should be invalid")
	}
}
