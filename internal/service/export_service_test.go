package service

import (
	"strings"
	"testing"

	"study_diagnostic_backend/internal/model"
)

func promptFixtureResult() *model.DiagnosticResult {
	return &model.DiagnosticResult{
		Answers: model.Answers{
			"Q1": 5,
			"Q2": 3,
			"Q3": 1,
			"Q4": 5,
			"Q5": "yes",
		},
		Scores: model.Scores{
			model.DomainPriming:      25,
			model.DomainEncoding:     75,
			model.DomainReference:    50,
			model.DomainRetrieval:    40,
			model.DomainOverlearning: 0,
		},
		MetaScores: model.Scores{
			model.DomainMindsetFixed: 80,
			model.DomainBigPicture:   60,
		},
		Overall: 48,
		Flags:   []string{"low_priming", "low_retrieval"},
		OneThing: model.OneThing{
			Title:       "Priming Before Study Sessions",
			Description: "Spend five minutes activating prior knowledge.",
			Steps:       []string{"Skim headings", "Write what you know", "List open questions"},
		},
		DomainActions: map[string][]string{
			model.DomainPriming:      {"Do a brain dump", "Preview the chapter", "A third action"},
			model.DomainEncoding:     {"Explain it in your own words"},
			model.DomainReference:    {"Map your notes"},
			model.DomainRetrieval:    {"Self-quiz daily"},
			model.DomainOverlearning: {"Stop polishing mastered topics"},
		},
		RecommendedVideos: []model.VideoRec{
			{ID: "v1", Title: "Video One"},
		},
		RecommendedArticles: []model.ArticleRec{
			{ID: "a1", Title: "Article One"},
			{ID: "a2", Title: "Article Two"},
		},
	}
}

func promptFixtureQuestions() []model.Question {
	return []model.Question{
		{ID: "Q1", Text: "I preview material before studying.", Type: model.Likert5, Domain: model.DomainPriming},
		{ID: "Q2", Text: "I quiz myself.", Type: model.Likert5, Domain: model.DomainRetrieval},
		{ID: "Q3", Text: "I connect new ideas to old ones.", Type: model.Likert5, Domain: model.DomainEncoding},
		{ID: "Q4", Text: "My notes are verbatim transcriptions.", Type: model.Likert5, Domain: model.DomainReference, Reverse: true},
		{ID: "Q5", Text: "Do you re-read instead of recalling?", Type: model.YesNoMaybe, Domain: model.DomainOverlearning},
		{ID: "Q6", Text: "Never answered.", Type: model.Likert5, Domain: model.DomainPriming},
	}
}

func TestBuildCoachPromptSections(t *testing.T) {
	prompt := BuildCoachPrompt(promptFixtureResult(), promptFixtureQuestions())

	for _, want := range []string{
		"STUDENT'S DIAGNOSTIC PROFILE:",
		"Core Learning Skills: priming: 25",
		"Meta-Learning Skills: big_picture: 60, mindset_fixed: 80",
		"Key Areas for Improvement: low_priming, low_retrieval",
		"HIGHEST-ROI PRIORITY:",
		`Focus Area: "Priming Before Study Sessions"`,
		"Quick Wins to Start Today: Skim headings; Write what you know",
		"TARGETED ACTIONS BY DOMAIN:",
		"Do a brain dump → Preview the chapter",
		"Videos to watch: v1",
		"Articles to read: a1, a2",
		"Detailed Question Responses:",
		"ANALYSIS FRAMEWORK",
		"DELIVERABLE:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// only the first two quick wins and domain actions appear
	if strings.Contains(prompt, "List open questions") {
		t.Error("prompt should truncate quick wins to two steps")
	}
	if strings.Contains(prompt, "A third action") {
		t.Error("prompt should truncate domain actions to two entries")
	}
}

func TestBuildCoachPromptSentiment(t *testing.T) {
	prompt := BuildCoachPrompt(promptFixtureResult(), promptFixtureQuestions())

	cases := []struct {
		question string
		want     string
	}{
		{"I preview material before studying.", "✅ (positive pattern)"}, // answered 5
		{"I quiz myself.", "⚠️ (neutral)"},                               // answered 3
		{"I connect new ideas to old ones.", "❌ (negative pattern)"},    // answered 1
		// reverse question answered 5 is a negative pattern
		{"My notes are verbatim transcriptions.", "❌ (negative pattern)"},
	}
	for _, c := range cases {
		idx := strings.Index(prompt, c.question)
		if idx < 0 {
			t.Errorf("prompt missing question %q", c.question)
			continue
		}
		line := prompt[idx:]
		if end := strings.Index(line, "\n- Q:"); end >= 0 {
			line = line[:end]
		}
		if !strings.Contains(line, c.want) {
			t.Errorf("question %q: want sentiment %q in %q", c.question, c.want, line)
		}
	}

	// non-numeric answers carry no sentiment marker
	idx := strings.Index(prompt, "Do you re-read instead of recalling?")
	if idx < 0 {
		t.Fatal("prompt missing the ynm question")
	}
	line := prompt[idx:]
	if end := strings.Index(line, "\n"); end >= 0 {
		line = line[:end+len("\n  Answer: yes")]
	}
	if strings.Contains(line, "pattern") || strings.Contains(line, "neutral") {
		t.Errorf("ynm answer should have no sentiment marker: %q", line)
	}

	// unanswered questions are omitted entirely
	if strings.Contains(prompt, "Never answered.") {
		t.Error("unanswered question should not appear in the breakdown")
	}
}

func TestBuildCoachPromptEmptyCollections(t *testing.T) {
	r := promptFixtureResult()
	r.Flags = nil
	r.RecommendedVideos = nil
	r.RecommendedArticles = nil

	prompt := BuildCoachPrompt(r, promptFixtureQuestions())

	if !strings.Contains(prompt, "Key Areas for Improvement: None identified") {
		t.Error("empty flags should render as None identified")
	}
	if !strings.Contains(prompt, "Videos to watch: None recommended") {
		t.Error("empty videos should render as None recommended")
	}
	if !strings.Contains(prompt, "Articles to read: None recommended") {
		t.Error("empty articles should render as None recommended")
	}
}
