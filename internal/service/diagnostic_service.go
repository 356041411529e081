package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/engine"
	"study_diagnostic_backend/internal/model"
	"study_diagnostic_backend/internal/repository"
	"study_diagnostic_backend/internal/util"
	"study_diagnostic_backend/pkg/logger"
	"study_diagnostic_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 50
	latestCacheTTL      = time.Hour
)

// DiagnosticService runs the scoring pipeline over the loaded catalogs and
// manages the per-user attempt history.
type DiagnosticService struct {
	Catalog *CatalogService
	Repo    *repository.AttemptRepository
	Redis   *redis.Client

	mu           sync.RWMutex
	engineCfg    engine.Config
	historyLimit int
}

func NewDiagnosticService(catalog *CatalogService, repo *repository.AttemptRepository, rdb *redis.Client, cfg *config.Config) *DiagnosticService {
	s := &DiagnosticService{
		Catalog: catalog,
		Repo:    repo,
		Redis:   rdb,
	}
	s.applyConfig(cfg)
	return s
}

// BuildEngineConfig merges the diagnostic config section over the canonical
// defaults. Absent values keep their defaults so a minimal config file still
// yields the full rule set.
func BuildEngineConfig(diag config.DiagnosticConfig) engine.Config {
	cfg := engine.DefaultConfig()

	for d, w := range diag.DomainWeights {
		cfg.DomainWeights[d] = w
	}
	applyThresholds(&cfg.Thresholds, diag.Thresholds)
	if diag.MaxVideos > 0 {
		cfg.MaxVideos = diag.MaxVideos
	}
	if diag.MaxArticles > 0 {
		cfg.MaxArticles = diag.MaxArticles
	}
	if len(diag.FocusPriority) > 0 {
		priority := make([]engine.Flag, len(diag.FocusPriority))
		for i, f := range diag.FocusPriority {
			priority[i] = engine.Flag(f)
		}
		cfg.FocusPriority = priority
	}
	if diag.NoteLowID != "" {
		cfg.LinearNotesLowID = diag.NoteLowID
	}
	if diag.NoteHighID != "" {
		cfg.LinearNotesHighID = diag.NoteHighID
	}

	return cfg
}

func applyThresholds(t *engine.Thresholds, overrides map[string]int) {
	for name, v := range overrides {
		switch name {
		case "low_priming":
			t.LowPriming = v
		case "low_retrieval":
			t.LowRetrieval = v
		case "low_encoding":
			t.LowEncoding = v
		case "weak_reference":
			t.WeakReference = v
		case "overlearning_excess":
			t.OverlearningExcess = v
		case "overlearning_primed":
			t.OverlearningPrimed = v
		case "fixed_mindset":
			t.FixedMindset = v
		case "low_resourcefulness":
			t.LowResourcefulness = v
		case "big_picture":
			t.BigPicture = v
		default:
			logger.Log.Warn("Unknown threshold override ignored", zap.String("name", name))
		}
	}
}

func (s *DiagnosticService) applyConfig(cfg *config.Config) {
	engineCfg := BuildEngineConfig(cfg.Diagnostic)
	limit := cfg.Diagnostic.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	s.mu.Lock()
	s.engineCfg = engineCfg
	s.historyLimit = limit
	s.mu.Unlock()
}

// ReloadConfig re-applies the diagnostic section after a config hot reload.
func (s *DiagnosticService) ReloadConfig(cfg *config.Config) {
	s.applyConfig(cfg)
	logger.Log.Info("Diagnostic rule configuration reloaded")
}

func (s *DiagnosticService) EngineConfig() engine.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engineCfg
}

// fillDefaults completes the answers map before scoring: an unanswered
// likert5 becomes a neutral 3, an unanswered ynm becomes "maybe". The engine
// itself never defaults; this is the questionnaire-flow boundary.
func fillDefaults(questions []model.Question, answers model.Answers) model.Answers {
	filled := make(model.Answers, len(questions))
	for k, v := range answers {
		filled[k] = v
	}
	for _, q := range questions {
		if _, ok := filled[q.ID]; ok {
			continue
		}
		switch q.Type {
		case model.Likert5:
			filled[q.ID] = 3
		case model.YesNoMaybe:
			filled[q.ID] = "maybe"
		}
	}
	return filled
}

// Submit scores a completed questionnaire, persists the attempt and caches
// it as the user's latest result. Invalid answer values surface as
// engine.ErrInvalidAnswer and nothing is persisted.
func (s *DiagnosticService) Submit(ctx context.Context, userID uint, answers model.Answers) (*model.DiagnosticAttempt, *model.DiagnosticResult, error) {
	ctx, span := tracing.StartSpan(ctx, "diagnostic.submit",
		attribute.Int("diagnostic.answer_count", len(answers)),
	)
	defer span.End()

	cfg := s.EngineConfig()

	core := s.Catalog.CoreQuestions()
	meta := s.Catalog.MetaQuestions()
	filled := fillDefaults(s.Catalog.AllQuestions(), answers)

	result, err := engine.BuildResult(cfg, core, meta, s.Catalog.Videos(), s.Catalog.Articles(), filled)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("diagnostic.overall", result.Overall),
		attribute.Int("diagnostic.flag_count", len(result.Flags)),
	)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, nil, err
	}

	attempt := &model.DiagnosticAttempt{
		UserID:  userID,
		TakenAt: time.Now(),
		Overall: result.Overall,
		Result:  resultJSON,
	}
	if err := s.Repo.Create(attempt); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	limit := s.historyLimit
	s.mu.RUnlock()
	if err := s.Repo.PruneOldest(userID, limit); err != nil {
		logger.Log.Warn("Failed to prune diagnostic history", zap.Uint("userId", userID), zap.Error(err))
	}

	s.cacheLatest(ctx, userID, attempt)

	return attempt, &result, nil
}

func latestCacheKey(userID uint) string {
	return fmt.Sprintf("diagnostic:latest:%d", userID)
}

func (s *DiagnosticService) cacheLatest(ctx context.Context, userID uint, attempt *model.DiagnosticAttempt) {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, latestCacheKey(userID), payload, latestCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache latest diagnostic", zap.Uint("userId", userID), zap.Error(err))
	}
}

func (s *DiagnosticService) invalidateLatest(ctx context.Context, userID uint) {
	if err := s.Redis.Del(ctx, latestCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate latest diagnostic cache", zap.Uint("userId", userID), zap.Error(err))
	}
}

// Latest returns the user's most recent attempt, trying the Redis cache
// before the database.
func (s *DiagnosticService) Latest(ctx context.Context, userID uint) (*model.DiagnosticAttempt, error) {
	if payload, err := s.Redis.Get(ctx, latestCacheKey(userID)).Bytes(); err == nil {
		var attempt model.DiagnosticAttempt
		if err := json.Unmarshal(payload, &attempt); err == nil {
			return &attempt, nil
		}
	}

	attempts, err := s.Repo.Latest(userID, 1)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, util.ErrNoAttempts
	}

	s.cacheLatest(ctx, userID, &attempts[0])
	return &attempts[0], nil
}

// HistoryEntry is the list-view projection of an attempt.
type HistoryEntry struct {
	ID      string    `json:"id"`
	TakenAt time.Time `json:"takenAt"`
	Overall int       `json:"overall"`
}

func (s *DiagnosticService) History(userID uint) ([]HistoryEntry, error) {
	attempts, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, len(attempts))
	for i, a := range attempts {
		entries[i] = HistoryEntry{ID: a.ID, TakenAt: a.TakenAt, Overall: a.Overall}
	}
	return entries, nil
}

func (s *DiagnosticService) GetAttempt(userID uint, id string) (*model.DiagnosticAttempt, error) {
	attempt, err := s.Repo.FindByID(userID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, err
}

func (s *DiagnosticService) DeleteAttempt(ctx context.Context, userID uint, id string) error {
	err := s.Repo.Delete(userID, id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrAttemptNotFound
	}
	if err == nil {
		s.invalidateLatest(ctx, userID)
	}
	return err
}

func (s *DiagnosticService) ClearHistory(ctx context.Context, userID uint) error {
	if err := s.Repo.DeleteAllByUser(userID); err != nil {
		return err
	}
	s.invalidateLatest(ctx, userID)
	return nil
}

// Comparison reports per-domain deltas between the two most recent attempts.
type Comparison struct {
	Previous     model.DiagnosticResult `json:"previous"`
	Improvements map[string]int         `json:"improvements"`
}

func (s *DiagnosticService) Compare(userID uint) (*Comparison, error) {
	attempts, err := s.Repo.Latest(userID, 2)
	if err != nil {
		return nil, err
	}
	if len(attempts) < 2 {
		return nil, util.ErrNotEnoughHistory
	}

	var current, previous model.DiagnosticResult
	if err := json.Unmarshal(attempts[0].Result, &current); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attempts[1].Result, &previous); err != nil {
		return nil, err
	}

	improvements := make(map[string]int, len(current.Scores))
	for domain, score := range current.Scores {
		improvements[domain] = score - previous.Scores[domain]
	}

	return &Comparison{Previous: previous, Improvements: improvements}, nil
}

// ImportedEntry is one history record supplied by a client-side export.
type ImportedEntry struct {
	ID      string                 `json:"id"`
	TakenAt time.Time              `json:"takenAt"`
	Results model.DiagnosticResult `json:"results"`
}

// ImportHistory merges exported entries into the user's history, skipping
// ids that already exist and pruning back to the history limit.
func (s *DiagnosticService) ImportHistory(ctx context.Context, userID uint, entries []ImportedEntry) (int, error) {
	imported := 0
	for _, e := range entries {
		if e.ID != "" {
			if _, err := s.Repo.FindByID(userID, e.ID); err == nil {
				continue
			}
		}

		resultJSON, err := json.Marshal(e.Results)
		if err != nil {
			return imported, err
		}
		takenAt := e.TakenAt
		if takenAt.IsZero() {
			takenAt = time.Now()
		}

		attempt := &model.DiagnosticAttempt{
			UserID:  userID,
			TakenAt: takenAt,
			Overall: e.Results.Overall,
			Result:  resultJSON,
		}
		attempt.ID = e.ID
		if err := s.Repo.Create(attempt); err != nil {
			return imported, err
		}
		imported++
	}

	s.mu.RLock()
	limit := s.historyLimit
	s.mu.RUnlock()
	if err := s.Repo.PruneOldest(userID, limit); err != nil {
		logger.Log.Warn("Failed to prune diagnostic history after import", zap.Uint("userId", userID), zap.Error(err))
	}
	s.invalidateLatest(ctx, userID)

	return imported, nil
}
