package repository

import (
	"time"

	"github.com/dkim/authapi-backend/internal/app/model"
	"github.com/dkim/authapi-backend/pkg/logger"
	"gorm.io/gorm"
)

type ResetRequestRepository interface {
	Create(request *model.PasswordResetRequest) error
	CountSince(email string, since time.Time) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type resetRequestRepository struct {
	db *gorm.DB
}

func NewResetRequestRepository(db *gorm.DB) ResetRequestRepository {
	return &resetRequestRepository{db: db}
}

func (r *resetRequestRepository) Create(request *model.PasswordResetRequest) error {
	logger.Debug("Recording password reset request", map[string]interface{}{
		"email": request.Email,
	})

	if err := r.db.Create(request).Error; err != nil {
		logger.Error("Failed to record password reset request", err, map[string]interface{}{
			"email": request.Email,
		})
		return err
	}

	return nil
}

func (r *resetRequestRepository) CountSince(email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.PasswordResetRequest{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count password reset requests", err, map[string]interface{}{
			"email": email,
		})
		return 0, err
	}
	return count, nil
}

func (r *resetRequestRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.PasswordResetRequest{})
	if result.Error != nil {
		logger.Error("Failed to delete aged password reset requests", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Aged password reset requests deleted", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
