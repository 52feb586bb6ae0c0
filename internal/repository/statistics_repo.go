package repository

import (
	"context"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// StatisticsRepository computes the dashboard counters. Each counter is an
// independent read; callers must not assume the five figures come from one
// snapshot.
type StatisticsRepository interface {
	CountClients(ctx context.Context) (int64, error)
	CountCases(ctx context.Context) (int64, error)
	CountActiveCases(ctx context.Context) (int64, error)
	CountPendingTasks(ctx context.Context) (int64, error)
	CountPendingDocuments(ctx context.Context) (int64, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Client{}).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountCases(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Case{}).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountActiveCases(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Case{}).Where("status <> ?", model.StatusClosed).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountPendingTasks(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Task{}).Where("status <> ?", model.TaskStatusCompleted).Count(&count).Error
	return count, err
}

func (r *statisticsRepository) CountPendingDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Document{}).Where("status = ?", model.DocumentStatusPending).Count(&count).Error
	return count, err
}
