package service

import (
	"context"

	"immigration-crm/internal/model"
	"immigration-crm/internal/repository"
)

// StatisticsService computes the dashboard snapshot.
type StatisticsService interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

// GetDashboardStats runs five independent counts and bundles them. The
// counts are not taken under one snapshot; concurrent writes may make them
// mutually inconsistent by a row, which is accepted for a dashboard.
func (s *statisticsService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}
	var err error

	if stats.TotalClients, err = s.repo.CountClients(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCases, err = s.repo.CountCases(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveCases, err = s.repo.CountActiveCases(ctx); err != nil {
		return nil, err
	}
	if stats.PendingTasks, err = s.repo.CountPendingTasks(ctx); err != nil {
		return nil, err
	}
	if stats.PendingDocuments, err = s.repo.CountPendingDocuments(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
