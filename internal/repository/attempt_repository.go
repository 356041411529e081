package repository

import (
	"math"

	"study_diagnostic_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.DiagnosticAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) FindByID(userID uint, id string) (*model.DiagnosticAttempt, error) {
	var a model.DiagnosticAttempt
	err := r.DB.Where("user_id = ? AND id = ?", userID, id).First(&a).Error
	return &a, err
}

func (r *AttemptRepository) ListByUser(userID uint) ([]model.DiagnosticAttempt, error) {
	var as []model.DiagnosticAttempt
	err := r.DB.Where("user_id = ?", userID).Order("taken_at desc").Find(&as).Error
	return as, err
}

func (r *AttemptRepository) Latest(userID uint, n int) ([]model.DiagnosticAttempt, error) {
	var as []model.DiagnosticAttempt
	err := r.DB.Where("user_id = ?", userID).Order("taken_at desc").Limit(n).Find(&as).Error
	return as, err
}

func (r *AttemptRepository) Delete(userID uint, id string) error {
	res := r.DB.Where("user_id = ?", userID).Delete(&model.DiagnosticAttempt{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AttemptRepository) DeleteAllByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.DiagnosticAttempt{}).Error
}

// PruneOldest removes attempts beyond limit for the user, oldest first.
// MySQL rejects OFFSET without LIMIT, so the selection carries an explicit
// huge limit to page past the newest rows.
func (r *AttemptRepository) PruneOldest(userID uint, limit int) error {
	var ids []string
	err := r.DB.Model(&model.DiagnosticAttempt{}).
		Where("user_id = ?", userID).
		Order("taken_at desc").
		Limit(math.MaxInt32).
		Offset(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Where("id IN ?", ids).Delete(&model.DiagnosticAttempt{}).Error
}

func (r *AttemptRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.DiagnosticAttempt{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
