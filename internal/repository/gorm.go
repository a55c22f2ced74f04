package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// SaveRun persists a run and its rows in one transaction.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *ComparisonRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save comparison run: %w", err)
	}
	return nil
}

// GetRunByUUID retrieves a run with its rows ordered by rank.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*ComparisonRun, error) {
	var run ComparisonRun

	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Where("run_uuid = ?", runUUID).
		First(&run).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// ListRuns returns the most recent runs, newest first. An empty region
// matches all runs.
func (r *GormRunRepository) ListRuns(ctx context.Context, region string, limit int) ([]*ComparisonRun, error) {
	query := r.db.WithContext(ctx).Order("id DESC").Limit(limit)
	if region != "" {
		query = query.Where("region = ?", region)
	}

	var runs []*ComparisonRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and its rows.
func (r *GormRunRepository) DeleteRun(ctx context.Context, runUUID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var run ComparisonRun
		err := tx.Where("run_uuid = ?", runUUID).First(&run).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("run not found: %s", runUUID)
			}
			return fmt.Errorf("failed to get run: %w", err)
		}

		if err := tx.Where("run_id = ?", run.ID).Delete(&ComparisonRunRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete run rows: %w", err)
		}
		if err := tx.Delete(&run).Error; err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		return nil
	})
}
