package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
)

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// Snapshot runs three independent prefix scans. The counts may reflect
// slightly different instants under concurrent writes; the snapshot is a
// display-only approximation and is never used for the remaining-amount
// check.
func (s *statsService) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	snapshot := &models.StatsSnapshot{}

	profiles, err := s.repo.Profile().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list profiles", ErrStorageFailure)
	}
	for _, p := range profiles {
		if p.Role == models.RoleAlumni {
			snapshot.ActiveAlumni++
		}
	}

	requests, err := s.repo.Scholarship().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list scholarship requests", ErrStorageFailure)
	}
	snapshot.StudentsWithScholarship = int64(len(requests))

	contributions, err := s.repo.Contribution().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list contributions", ErrStorageFailure)
	}
	for _, c := range contributions {
		snapshot.TotalContributions += c.Amount
	}

	return snapshot, nil
}
