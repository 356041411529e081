package model

// OneThing is the single highest-priority intervention selected for a user.
// Exactly one is chosen per diagnostic run; a default bundle exists so it is
// never empty.
type OneThing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// DiagnosticResult is the terminal aggregate of one diagnostic run. It is
// built once by the engine and never mutated afterwards; persistence, export
// and presentation all consume this shape.
type DiagnosticResult struct {
	Answers             Answers             `json:"answers"`
	Scores              Scores              `json:"scores"`
	MetaScores          Scores              `json:"metaScores"`
	Overall             int                 `json:"overall"`
	Flags               []string            `json:"flags"`
	OneThing            OneThing            `json:"oneThing"`
	DomainActions       map[string][]string `json:"domainActions"`
	RecommendedVideos   []VideoRec          `json:"recommendedVideos"`
	RecommendedArticles []ArticleRec        `json:"recommendedArticles"`
}
