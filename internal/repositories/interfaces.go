package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/alumbridge/scholarship-service/internal/models"
)

var ErrNotFound = errors.New("repositories: not found")

// ProfileRepository persists directory records and their secondary lookup
// indexes (roll number and email to identity id).
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	ResolveRollNumber(ctx context.Context, rollNumber string) (string, error)
	ResolveEmail(ctx context.Context, email string) (string, error)
}

// ScholarshipRepository persists the one-per-student funding records.
type ScholarshipRepository interface {
	Save(ctx context.Context, request *models.ScholarshipRequest) error
	GetByStudentID(ctx context.Context, studentID string) (*models.ScholarshipRequest, error)
	List(ctx context.Context) ([]*models.ScholarshipRequest, error)
}

// ContributionRepository is the append-only ledger. There is deliberately no
// update or delete.
type ContributionRepository interface {
	Append(ctx context.Context, contribution *models.Contribution) error
	List(ctx context.Context) ([]*models.Contribution, error)
	ListByAlumni(ctx context.Context, alumniID string) ([]*models.Contribution, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Contribution, error)
	// SumByStudentSince totals the amounts credited to a student at or after
	// the given instant. Totals are scoped to the active request's creation
	// time so a re-submitted request starts over without rewriting history.
	SumByStudentSince(ctx context.Context, studentID string, since time.Time) (int64, error)
}

// Repository aggregates all repositories behind one dependency.
type Repository interface {
	Profile() ProfileRepository
	Scholarship() ScholarshipRepository
	Contribution() ContributionRepository
	Ping(ctx context.Context) error
	Close() error
}
