package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/alumbridge/scholarship-service/internal/kvstore"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
)

const scholarshipKeyPrefix = "scholarship:"

type scholarshipRepository struct {
	store kvstore.Store
}

// Save writes the record under scholarship:<studentId>. Keying by student id
// makes re-submission an overwrite rather than a duplicate.
func (r *scholarshipRepository) Save(ctx context.Context, request *models.ScholarshipRequest) error {
	return r.store.Set(ctx, scholarshipKeyPrefix+request.StudentID, request)
}

func (r *scholarshipRepository) GetByStudentID(ctx context.Context, studentID string) (*models.ScholarshipRequest, error) {
	var request models.ScholarshipRequest
	if err := r.store.Get(ctx, scholarshipKeyPrefix+studentID, &request); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *scholarshipRepository) List(ctx context.Context) ([]*models.ScholarshipRequest, error) {
	values, err := r.store.GetByPrefix(ctx, scholarshipKeyPrefix)
	if err != nil {
		return nil, err
	}

	requests := make([]*models.ScholarshipRequest, 0, len(values))
	for _, v := range values {
		var req models.ScholarshipRequest
		if err := json.Unmarshal(v, &req); err != nil {
			continue
		}
		requests = append(requests, &req)
	}
	return requests, nil
}
