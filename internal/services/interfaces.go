package services

import (
	"context"
	"errors"

	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

// Service error taxonomy. Handlers map these to HTTP statuses; anything else
// is treated as an internal failure and never surfaced verbatim.
var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("resource not found")
	ErrDuplicateIdentity      = errors.New("identity already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrScholarshipNotFound    = errors.New("scholarship request not found")
	ErrAmountExceedsRemaining = errors.New("amount exceeds remaining requirement")
	ErrStorageFailure         = errors.New("storage failure")
)

// EnrichedScholarship is a funding record joined with the owning student's
// display fields for the alumni listing.
type EnrichedScholarship struct {
	*models.ScholarshipRequest
	StudentName       string `json:"studentName"`
	StudentDepartment string `json:"studentDepartment"`
	StudentYear       string `json:"studentYear"`
	StudentPhone      string `json:"studentPhone"`
	StudentEmail      string `json:"studentEmail"`
}

// DirectoryService maps identities to profiles and secondary lookup keys.
type DirectoryService interface {
	Register(ctx context.Context, req *validator.SignupRequest) (*models.Profile, error)
	Authenticate(ctx context.Context, req *validator.LoginRequest) (string, *models.Profile, error)
	Get(ctx context.Context, id string) (*models.Profile, error)
}

// ScholarshipService is the funding-request registry.
type ScholarshipService interface {
	Submit(ctx context.Context, callerID string, req *validator.SubmitScholarshipRequest) (*models.ScholarshipRequest, error)
	Get(ctx context.Context, studentID string) (*models.ScholarshipRequest, *models.Profile, error)
	ListAll(ctx context.Context) ([]*EnrichedScholarship, error)
}

// ContributionService appends to the ledger and answers per-giver views.
type ContributionService interface {
	Record(ctx context.Context, alumniID string, req *validator.ContributeRequest) (*models.Contribution, error)
	ListByAlumni(ctx context.Context, alumniID string) ([]*models.Contribution, error)
}

// StatsService derives the portal-wide counters.
type StatsService interface {
	Snapshot(ctx context.Context) (*models.StatsSnapshot, error)
}

// ServiceManager bundles the business services behind one dependency.
type ServiceManager interface {
	Directory() DirectoryService
	Scholarship() ScholarshipService
	Contribution() ContributionService
	Stats() StatsService
	Shutdown(ctx context.Context) error
}
