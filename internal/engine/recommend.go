package engine

import (
	"sort"

	"study_diagnostic_backend/internal/model"
)

// focusBundles holds the pre-authored intervention for each prioritised flag.
var focusBundles = map[Flag]model.OneThing{
	FlagLowPriming: {
		Title:       "Establish a Priming and Brain-Dump Routine",
		Description: "Start every learning session by previewing the topic, asking questions, and connecting new ideas to what you already know. Then summarise from memory immediately after.",
		Steps: []string{
			"Before class: skim headings and bold terms to get the big picture.",
			"Write down three questions you expect to answer and one analogy or connection.",
			"After class: do a 2–3 minute brain dump without notes to consolidate and uncover gaps.",
		},
	},
	FlagLowRetrieval: {
		Title:       "Implement Daily Micro-Retrieval",
		Description: "Spaced, low-stakes recall strengthens memory better than re-reading. Engage in short recall sessions each day to test your knowledge and reveal misunderstandings.",
		Steps: []string{
			"Write three practice questions at the end of each study session.",
			"The next day, answer those questions from memory without looking at notes.",
			"Check your answers and identify areas that need more work.",
		},
	},
	FlagWeakReference: {
		Title:       "Switch to Concept-Map Based Note-Taking",
		Description: "Rethink your notes: separate facts from concepts and use non-linear structures to map relationships instead of transcribing everything linearly.",
		Steps: []string{
			"Use a blank page: centre the main idea and branch out related concepts, causes, examples and implications.",
			"Keep isolated facts in a small fact-bank separate from conceptual maps.",
			"Review your maps regularly and update them with new insights.",
		},
	},
	FlagRiskFixedMindset: {
		Title:       "Cultivate a Growth Mindset",
		Description: "Believing that intelligence can grow increases motivation and resilience. Reframe mistakes as opportunities and focus on effort and strategy.",
		Steps: []string{
			"Reflect on a time when persistence led to success.",
			"Replace 'I can't' with 'I can't yet' in your self-talk.",
			"Seek feedback and view challenges as ways to strengthen your brain.",
		},
	},
}

// defaultFocus is returned when no prioritised flag matched.
var defaultFocus = model.OneThing{
	Title:       "Practice Interleaving and Spaced Revision",
	Description: "Mix different topics and problem types within a study session and distribute your practice over time to improve discrimination and long-term retention.",
	Steps: []string{
		"Alternate between different subjects or problem types instead of studying one in isolation.",
		"Schedule multiple short review sessions over several days instead of one long cram.",
		"Include problems that combine multiple concepts to encourage transfer.",
	},
}

// SelectOneThing walks the configured priority list and returns the bundle
// of the first flag present, falling back to the spaced-revision default.
// The linear_notes flag shares the concept-mapping bundle with
// weak_reference: either one satisfies that priority slot.
//
// scores is accepted for future score-sensitive tie-breaking and is
// currently unused.
func SelectOneThing(cfg Config, flags []Flag, scores model.Scores) model.OneThing {
	for _, priority := range cfg.FocusPriority {
		matched := HasFlag(flags, priority)
		if priority == FlagWeakReference && !matched {
			matched = HasFlag(flags, FlagLinearNotes)
		}
		if !matched {
			continue
		}
		if bundle, ok := focusBundles[priority]; ok {
			return bundle
		}
	}
	return defaultFocus
}

// domainActions is the static per-domain tip table.
var domainActions = map[string][]string{
	model.DomainPriming: {
		"Preview material before class by skimming headings and summaries.",
		"Write down what you already know and generate questions to guide your learning.",
		"Create analogies to relate new concepts to familiar experiences.",
		"Pause during study to reorganise and summarise what you have learned so far.",
	},
	model.DomainEncoding: {
		"Teach the material to someone else or record yourself explaining it.",
		"Break complex ideas into smaller chunks and relate them to examples.",
		"Use diagrams or flowcharts to illustrate processes and relationships.",
		"Make connections across topics to deepen understanding.",
	},
	model.DomainReference: {
		"Separate conceptual maps from fact banks: use non-linear structures for concepts and lists for facts.",
		"Minimise verbatim note-taking; focus on relationships and synthesis.",
		"Organise notes using colours or shapes to group related ideas.",
		"Regularly prune your notes, keeping only what aids understanding.",
	},
	model.DomainRetrieval: {
		"Self-test within 24 hours of learning new material to identify gaps.",
		"Use flashcards or quizzes for isolated facts and open-ended questions for concepts.",
		"Practice recalling information in different ways: writing, drawing and explaining verbally.",
		"Incorporate cumulative questions that combine topics to encourage transfer.",
	},
	model.DomainOverlearning: {
		"Delay intensive drilling until you have built a solid understanding through priming, encoding and retrieval.",
		"Use high-volume practice strategically for core skills that require speed or automaticity.",
		"Balance repetition with reflection to avoid rote memorisation without understanding.",
	},
}

// SelectDomainActions returns the action list for each core domain. The
// content does not vary with the score today; scores is kept in the
// signature for future personalisation.
func SelectDomainActions(scores model.Scores) map[string][]string {
	actions := make(map[string][]string, len(domainActions))
	for d, tips := range domainActions {
		out := make([]string, len(tips))
		copy(out, tips)
		actions[d] = out
	}
	return actions
}

// matchScore is 2 points per flag the resource maps to. The brevity bonus
// below always stays under 2, so it can reorder equally-relevant items but
// never outranks an extra matched flag.
func matchScore(mapsTo []string, flags []Flag) float64 {
	var s float64
	for _, tag := range mapsTo {
		if HasFlag(flags, Flag(tag)) {
			s += 2
		}
	}
	return s
}

// RecommendVideos ranks videos by flag relevance with a small bonus for
// shorter runtime, drops irrelevant candidates and truncates to
// cfg.MaxVideos. Sorting is stable: input order breaks exact ties.
func RecommendVideos(cfg Config, videos []model.VideoRec, flags []Flag) []model.VideoRec {
	type scored struct {
		vid   model.VideoRec
		score float64
	}
	ranked := make([]scored, 0, len(videos))

	for _, v := range videos {
		s := matchScore(v.MapsTo, flags)
		if s == 0 {
			continue
		}
		if bonus := 5 - v.DurationMinutes; bonus > 0 {
			s += bonus * 0.1
		}
		ranked = append(ranked, scored{vid: v, score: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > cfg.MaxVideos {
		ranked = ranked[:cfg.MaxVideos]
	}
	out := make([]model.VideoRec, len(ranked))
	for i, r := range ranked {
		out[i] = r.vid
	}
	return out
}

// RecommendArticles mirrors RecommendVideos with the article bonus window
// favouring reads of ten minutes or less.
func RecommendArticles(cfg Config, articles []model.ArticleRec, flags []Flag) []model.ArticleRec {
	type scored struct {
		art   model.ArticleRec
		score float64
	}
	ranked := make([]scored, 0, len(articles))

	for _, a := range articles {
		s := matchScore(a.MapsTo, flags)
		if s == 0 {
			continue
		}
		if bonus := 10 - a.EstMinutes; bonus > 0 {
			s += bonus * 0.1
		}
		ranked = append(ranked, scored{art: a, score: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > cfg.MaxArticles {
		ranked = ranked[:cfg.MaxArticles]
	}
	out := make([]model.ArticleRec, len(ranked))
	for i, r := range ranked {
		out[i] = r.art
	}
	return out
}
