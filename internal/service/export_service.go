package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"study_diagnostic_backend/internal/model"
)

// ExportService turns persisted attempts into portable documents: a
// history-compatible JSON export, a learning-coach prompt, and an archived
// copy in the storage backend.
type ExportService struct {
	Catalog *CatalogService
	Storage *StorageService
}

func NewExportService(catalog *CatalogService, storage *StorageService) *ExportService {
	return &ExportService{Catalog: catalog, Storage: storage}
}

// ExportEntry mirrors the history-entry shape clients exchange, so an
// exported attempt can be re-imported untouched.
type ExportEntry struct {
	ID        string                 `json:"id"`
	Timestamp int64                  `json:"timestamp"`
	Date      string                 `json:"date"`
	Results   model.DiagnosticResult `json:"results"`
}

func (s *ExportService) BuildExportEntry(attempt *model.DiagnosticAttempt) (*ExportEntry, error) {
	var result model.DiagnosticResult
	if err := json.Unmarshal(attempt.Result, &result); err != nil {
		return nil, err
	}

	return &ExportEntry{
		ID:        attempt.ID,
		Timestamp: attempt.TakenAt.UnixMilli(),
		Date:      attempt.TakenAt.Format("2006-01-02 15:04:05"),
		Results:   result,
	}, nil
}

// ArchiveReport serialises the export entry and stores it under
// reports/{user}/{attempt}.json, returning the stored object's URL.
func (s *ExportService) ArchiveReport(ctx context.Context, attempt *model.DiagnosticAttempt) (string, error) {
	entry, err := s.BuildExportEntry(attempt)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent([]*ExportEntry{entry}, "", "  ")
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("reports/%d/%s.json", attempt.UserID, attempt.ID)
	return s.Storage.Provider.Upload(ctx, filename, bytes.NewReader(payload), int64(len(payload)), "application/json")
}

// GenerateCoachPrompt renders the diagnostic into a prompt for an external
// LLM learning coach, including the per-question sentiment breakdown.
func (s *ExportService) GenerateCoachPrompt(attempt *model.DiagnosticAttempt) (string, error) {
	var r model.DiagnosticResult
	if err := json.Unmarshal(attempt.Result, &r); err != nil {
		return "", err
	}
	return BuildCoachPrompt(&r, s.Catalog.AllQuestions()), nil
}

// BuildCoachPrompt is the pure prompt renderer; split out so it can be
// exercised without storage or catalogs on disk.
func BuildCoachPrompt(r *model.DiagnosticResult, allQuestions []model.Question) string {
	coreParts := make([]string, len(model.CoreDomains))
	for i, d := range model.CoreDomains {
		coreParts[i] = fmt.Sprintf("%s: %d", d, r.Scores[d])
	}

	metaDomains := make([]string, 0, len(r.MetaScores))
	for d := range r.MetaScores {
		metaDomains = append(metaDomains, d)
	}
	sort.Strings(metaDomains)
	metaParts := make([]string, len(metaDomains))
	for i, d := range metaDomains {
		metaParts[i] = fmt.Sprintf("%s: %d", d, r.MetaScores[d])
	}

	flagsString := strings.Join(r.Flags, ", ")
	if flagsString == "" {
		flagsString = "None identified"
	}

	videoIDs := make([]string, len(r.RecommendedVideos))
	for i, v := range r.RecommendedVideos {
		videoIDs[i] = v.ID
	}
	articleIDs := make([]string, len(r.RecommendedArticles))
	for i, a := range r.RecommendedArticles {
		articleIDs[i] = a.ID
	}

	var b strings.Builder

	b.WriteString("You are an expert evidence-based learning coach who specializes in meta-learning and study skill optimization. ")
	b.WriteString("Your role is to help students maximize their learning ROI by focusing on high-impact interventions.\n\n")

	b.WriteString("STUDENT'S DIAGNOSTIC PROFILE:\n")
	fmt.Fprintf(&b, "Core Learning Skills: %s\n", strings.Join(coreParts, ", "))
	fmt.Fprintf(&b, "Meta-Learning Skills: %s\n", strings.Join(metaParts, ", "))
	fmt.Fprintf(&b, "Key Areas for Improvement: %s\n\n", flagsString)

	b.WriteString("HIGHEST-ROI PRIORITY:\n")
	fmt.Fprintf(&b, "Focus Area: %q\n", r.OneThing.Title)
	fmt.Fprintf(&b, "Why This Matters: %s\n", r.OneThing.Description)
	fmt.Fprintf(&b, "Quick Wins to Start Today: %s\n\n", strings.Join(firstN(r.OneThing.Steps, 2), "; "))

	b.WriteString("TARGETED ACTIONS BY DOMAIN:\n")
	for _, d := range model.CoreDomains {
		fmt.Fprintf(&b, "• %s (Current: %d%%): %s\n",
			titleCase(d), r.Scores[d], strings.Join(firstN(r.DomainActions[d], 2), " → "))
	}
	b.WriteString("\n")

	b.WriteString("RECOMMENDED LEARNING RESOURCES:\n")
	fmt.Fprintf(&b, "Videos to watch: %s\n", orNone(strings.Join(videoIDs, ", ")))
	fmt.Fprintf(&b, "Articles to read: %s\n", orNone(strings.Join(articleIDs, ", ")))

	writeAnswerBreakdown(&b, r, allQuestions)

	b.WriteString("\n\n---\n")
	b.WriteString("ANALYSIS FRAMEWORK - Think through this systematically:\n")
	b.WriteString("1. CURRENT STATE: Which meta-learning skills are strongest? Which are weakest?\n")
	b.WriteString("2. ROOT CAUSES: Why might the low-scoring areas be challenging?\n")
	b.WriteString("3. QUICK WINS: What's one small change with high ROI that could be implemented TODAY?\n")
	b.WriteString("4. 30-DAY PLAN: What's a realistic sequence of improvements for the next month?\n")
	b.WriteString("5. SUCCESS METRICS: How would we know if these changes are working?\n")
	b.WriteString("\n---\n")
	b.WriteString("DELIVERABLE:\n")
	b.WriteString("Please create a personalized study plan that:\n")
	fmt.Fprintf(&b, "• Prioritizes %q as the primary focus\n", r.OneThing.Title)
	b.WriteString("• Identifies 2-3 specific, actionable steps to implement this week\n")
	b.WriteString("• Explains why each step will have high ROI for meta-learning improvement\n")
	b.WriteString("• Includes realistic timeframes and success indicators\n")
	b.WriteString("• Connects recommendations to the diagnostic results above")

	return b.String()
}

// writeAnswerBreakdown lists each answered question with a sentiment marker.
// Only numeric (likert) answers carry a marker; for reverse-scored questions
// low raw answers are the positive pattern.
func writeAnswerBreakdown(b *strings.Builder, r *model.DiagnosticResult, allQuestions []model.Question) {
	if len(allQuestions) == 0 || len(r.Answers) == 0 {
		return
	}

	b.WriteString("\n\nDetailed Question Responses:\n")
	lines := make([]string, 0, len(allQuestions))
	for _, q := range allQuestions {
		ans, ok := r.Answers[q.ID]
		if !ok {
			continue
		}

		sentiment := ""
		if n, isNum := numericAnswer(ans); isNum {
			switch {
			case q.Reverse && n >= 4:
				sentiment = " ❌ (negative pattern)"
			case q.Reverse && n >= 3:
				sentiment = " ⚠️ (neutral)"
			case q.Reverse:
				sentiment = " ✅ (positive pattern)"
			case n >= 4:
				sentiment = " ✅ (positive pattern)"
			case n >= 3:
				sentiment = " ⚠️ (neutral)"
			default:
				sentiment = " ❌ (negative pattern)"
			}
		}

		lines = append(lines, fmt.Sprintf("- Q: %s\n  Answer: %v%s", q.Text, ans, sentiment))
	}
	b.WriteString(strings.Join(lines, "\n"))
}

func numericAnswer(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None recommended"
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
