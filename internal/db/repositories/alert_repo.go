package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"farewatch/backend/internal/models"
	gormModels "farewatch/backend/internal/models/gorm"
)

// historyCap bounds how many alerts are kept, matching the tracker's
// original behavior of trimming its notification history file.
const historyCap = 100

type AlertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

// Record persists one sent alert and trims history beyond the cap.
func (r *AlertRepo) Record(ctx context.Context, alert *gormModels.PriceAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return err
	}
	return r.trim(ctx)
}

// Recent returns alerts sent within the given window, newest first.
func (r *AlertRepo) Recent(ctx context.Context, window time.Duration) ([]gormModels.PriceAlert, error) {
	var alerts []gormModels.PriceAlert
	cutoff := time.Now().Add(-window)
	err := r.db.WithContext(ctx).
		Where("sent_at > ?", cutoff).
		Order("sent_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// Stats counts alerts overall, since local midnight, and over the last week.
func (r *AlertRepo) Stats(ctx context.Context) (*models.AlertStats, error) {
	stats := &models.AlertStats{}

	var total int64
	if err := r.db.WithContext(ctx).Model(&gormModels.PriceAlert{}).Count(&total).Error; err != nil {
		return nil, err
	}
	stats.Total = int(total)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var today int64
	if err := r.db.WithContext(ctx).Model(&gormModels.PriceAlert{}).
		Where("sent_at >= ?", midnight).Count(&today).Error; err != nil {
		return nil, err
	}
	stats.Today = int(today)

	var week int64
	if err := r.db.WithContext(ctx).Model(&gormModels.PriceAlert{}).
		Where("sent_at > ?", now.AddDate(0, 0, -7)).Count(&week).Error; err != nil {
		return nil, err
	}
	stats.ThisWeek = int(week)

	return stats, nil
}

func (r *AlertRepo) trim(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&gormModels.PriceAlert{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= historyCap {
		return nil
	}

	var cutoffs []gormModels.PriceAlert
	if err := r.db.WithContext(ctx).
		Order("sent_at DESC").
		Offset(historyCap - 1).
		Limit(1).
		Find(&cutoffs).Error; err != nil {
		return err
	}
	if len(cutoffs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("sent_at < ?", cutoffs[0].SentAt).
		Delete(&gormModels.PriceAlert{}).Error
}
