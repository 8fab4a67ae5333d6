package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alumbridge/scholarship-service/internal/kvstore"
	"github.com/alumbridge/scholarship-service/internal/models"
)

const contributionKeyPrefix = "contribution:"

type contributionRepository struct {
	store kvstore.Store
}

func (r *contributionRepository) Append(ctx context.Context, contribution *models.Contribution) error {
	return r.store.Set(ctx, contributionKeyPrefix+contribution.ID, contribution)
}

func (r *contributionRepository) List(ctx context.Context) ([]*models.Contribution, error) {
	return r.list(ctx, func(*models.Contribution) bool { return true })
}

func (r *contributionRepository) ListByAlumni(ctx context.Context, alumniID string) ([]*models.Contribution, error) {
	return r.list(ctx, func(c *models.Contribution) bool { return c.AlumniID == alumniID })
}

func (r *contributionRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.Contribution, error) {
	return r.list(ctx, func(c *models.Contribution) bool { return c.StudentID == studentID })
}

func (r *contributionRepository) SumByStudentSince(ctx context.Context, studentID string, since time.Time) (int64, error) {
	entries, err := r.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, c := range entries {
		if !c.CreatedAt.Before(since) {
			total += c.Amount
		}
	}
	return total, nil
}

func (r *contributionRepository) list(ctx context.Context, keep func(*models.Contribution) bool) ([]*models.Contribution, error) {
	values, err := r.store.GetByPrefix(ctx, contributionKeyPrefix)
	if err != nil {
		return nil, err
	}

	contributions := make([]*models.Contribution, 0, len(values))
	for _, v := range values {
		var c models.Contribution
		if err := json.Unmarshal(v, &c); err != nil {
			continue
		}
		if keep(&c) {
			contributions = append(contributions, &c)
		}
	}
	return contributions, nil
}
