package service

import (
	"encoding/json"
	"fmt"
	"os"

	"study_diagnostic_backend/internal/config"
	"study_diagnostic_backend/internal/model"
	"study_diagnostic_backend/internal/util"
	"study_diagnostic_backend/pkg/logger"

	"go.uber.org/zap"
)

// CatalogService owns the read-only reference data: question rosters and the
// video/article catalogs. Everything is loaded and validated once at startup
// and shared across requests without locking.
type CatalogService struct {
	coreQuestions []model.Question
	metaQuestions []model.Question
	videos        []model.VideoRec
	articles      []model.ArticleRec
}

func NewCatalogService(cfg *config.DataConfig) (*CatalogService, error) {
	s := &CatalogService{}

	if err := loadCatalog(cfg.CoreQuestions, &s.coreQuestions, validQuestion); err != nil {
		return nil, err
	}
	if err := loadCatalog(cfg.MetaQuestions, &s.metaQuestions, validQuestion); err != nil {
		return nil, err
	}
	if err := loadCatalog(cfg.Videos, &s.videos, validVideo); err != nil {
		return nil, err
	}
	if err := loadCatalog(cfg.Articles, &s.articles, validArticle); err != nil {
		return nil, err
	}

	logger.Log.Info("Catalogs loaded",
		zap.Int("coreQuestions", len(s.coreQuestions)),
		zap.Int("metaQuestions", len(s.metaQuestions)),
		zap.Int("videos", len(s.videos)),
		zap.Int("articles", len(s.articles)),
	)

	return s, nil
}

// loadCatalog reads a JSON array and keeps only items passing valid. Invalid
// items are filtered with a warning rather than failing the boot, matching
// the tolerant sourcing contract for reference data.
func loadCatalog[T any](path string, dst *[]T, valid func(T) bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %s: %v", util.ErrCatalogInvalid, path, err)
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if valid(item) {
			kept = append(kept, item)
		}
	}
	if dropped := len(items) - len(kept); dropped > 0 {
		logger.Log.Warn("Invalid catalog items filtered out",
			zap.String("path", path),
			zap.Int("dropped", dropped),
		)
	}

	*dst = kept
	return nil
}

func validQuestion(q model.Question) bool {
	if q.ID == "" || q.Text == "" || q.Domain == "" {
		return false
	}
	return q.Type == model.Likert5 || q.Type == model.YesNoMaybe
}

func validVideo(v model.VideoRec) bool {
	return v.ID != "" && v.Title != "" && v.URL != "" && v.MapsTo != nil && v.DurationMinutes > 0
}

func validArticle(a model.ArticleRec) bool {
	return a.ID != "" && a.Title != "" && a.URL != "" && a.MapsTo != nil && a.EstMinutes > 0
}

func (s *CatalogService) CoreQuestions() []model.Question { return s.coreQuestions }
func (s *CatalogService) MetaQuestions() []model.Question { return s.metaQuestions }
func (s *CatalogService) Videos() []model.VideoRec        { return s.videos }
func (s *CatalogService) Articles() []model.ArticleRec    { return s.articles }

// AllQuestions returns core and meta rosters concatenated, the order flag
// inference expects for its per-question lookups.
func (s *CatalogService) AllQuestions() []model.Question {
	all := make([]model.Question, 0, len(s.coreQuestions)+len(s.metaQuestions))
	all = append(all, s.coreQuestions...)
	all = append(all, s.metaQuestions...)
	return all
}
