package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"

	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

const (
	contributionLockPrefix = "lock:scholarship:"
	contributionLockTTL    = 10 * time.Second
)

type contributionService struct {
	repo      repositories.Repository
	locker    *redislock.Client
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContributionService(
	repo repositories.Repository,
	locker *redislock.Client,
	publisher events.Publisher,
	logger *slog.Logger,
	v *validator.Validator,
) ContributionService {
	return &contributionService{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Record appends one immutable ledger entry. The store has no atomic
// read-modify-write, so the check-then-append sequence runs under a
// per-student lock: two concurrent contributions to the same student are
// serialized, and neither can pass the remaining-amount check against a
// stale total.
func (s *contributionService) Record(ctx context.Context, alumniID string, req *validator.ContributeRequest) (*models.Contribution, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	lock, err := s.locker.Obtain(ctx, contributionLockPrefix+req.StudentID, contributionLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			s.logger.Warn("contribution lock not obtained", "student_id", req.StudentID)
		} else {
			s.logger.Error("contribution lock failed", "student_id", req.StudentID, "error", err)
		}
		return nil, fmt.Errorf("%w: acquire contribution lock", ErrStorageFailure)
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	record, err := s.repo.Scholarship().GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("%w: load scholarship request", ErrStorageFailure)
	}

	total, err := s.repo.Contribution().SumByStudentSince(ctx, req.StudentID, record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: sum contributions", ErrStorageFailure)
	}
	if req.Amount > record.AmountRequired-total {
		return nil, ErrAmountExceedsRemaining
	}

	now := time.Now().UTC()
	contribution := &models.Contribution{
		ID:        contributionID(now, alumniID),
		AlumniID:  alumniID,
		StudentID: req.StudentID,
		Amount:    req.Amount,
		CreatedAt: now,
	}

	if err := s.repo.Contribution().Append(ctx, contribution); err != nil {
		s.logger.Error("ledger append failed", "student_id", req.StudentID, "error", err)
		return nil, fmt.Errorf("%w: append contribution", ErrStorageFailure)
	}

	// Refresh the denormalized counter while still holding the lock. The
	// ledger is the source of truth; a failure here only staled a value no
	// read path trusts.
	record.TotalReceived = total + req.Amount
	if err := s.repo.Scholarship().Save(ctx, record); err != nil {
		s.logger.Warn("counter refresh failed", "student_id", req.StudentID, "error", err)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeContributionRecorded, map[string]any{
		"contributionId": contribution.ID,
		"alumniId":       alumniID,
		"studentId":      req.StudentID,
		"amount":         req.Amount,
	})); err != nil {
		s.logger.Warn("event publish failed", "type", events.TypeContributionRecorded, "error", err)
	}

	s.logger.Info("contribution recorded",
		"contribution_id", contribution.ID,
		"alumni_id", alumniID,
		"student_id", req.StudentID,
		"amount", req.Amount,
	)
	return contribution, nil
}

func (s *contributionService) ListByAlumni(ctx context.Context, alumniID string) ([]*models.Contribution, error) {
	contributions, err := s.repo.Contribution().ListByAlumni(ctx, alumniID)
	if err != nil {
		return nil, fmt.Errorf("%w: list contributions", ErrStorageFailure)
	}
	return contributions, nil
}

// contributionID builds a unique, caller-unguessable ledger key from the
// submission time, the giver, and a random suffix. The id is not used for
// ordering.
func contributionID(at time.Time, alumniID string) string {
	return fmt.Sprintf("%d-%s-%s", at.UnixMilli(), alumniID, uuid.NewString()[:8])
}
