package services

import (
	"context"
	"log/slog"

	"github.com/bsm/redislock"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/repositories"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

// Dependencies carries everything the service layer is built from.
type Dependencies struct {
	Repo      repositories.Repository
	Gateway   auth.Gateway
	Locker    *redislock.Client
	Publisher events.Publisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	directory    DirectoryService
	scholarship  ScholarshipService
	contribution ContributionService
	stats        StatsService
	publisher    events.Publisher
	logger       *slog.Logger
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		directory:    NewDirectoryService(deps.Repo, deps.Gateway, deps.Publisher, deps.Logger, deps.Validator),
		scholarship:  NewScholarshipService(deps.Repo, deps.Publisher, deps.Logger, deps.Validator),
		contribution: NewContributionService(deps.Repo, deps.Locker, deps.Publisher, deps.Logger, deps.Validator),
		stats:        NewStatsService(deps.Repo, deps.Logger),
		publisher:    deps.Publisher,
		logger:       deps.Logger,
	}
}

func (m *serviceManager) Directory() DirectoryService       { return m.directory }
func (m *serviceManager) Scholarship() ScholarshipService   { return m.scholarship }
func (m *serviceManager) Contribution() ContributionService { return m.contribution }
func (m *serviceManager) Stats() StatsService               { return m.stats }

func (m *serviceManager) Shutdown(ctx context.Context) error {
	if err := m.publisher.Close(); err != nil {
		m.logger.Error("event publisher close failed", "error", err)
		return err
	}
	return nil
}
