package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

type scholarshipService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScholarshipService(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	v *validator.Validator,
) ScholarshipService {
	return &scholarshipService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Submit creates or replaces the caller's funding record. One active request
// per student keeps aggregation simple and avoids orphaned partial-funding
// records; the derived total starts over from the new record's CreatedAt.
func (s *scholarshipService) Submit(ctx context.Context, callerID string, req *validator.SubmitScholarshipRequest) (*models.ScholarshipRequest, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if req.StudentID != "" && req.StudentID != callerID {
		return nil, fmt.Errorf("%w: scholarship requests are self-submitted", ErrForbidden)
	}

	semesters := make([]models.SemesterGPA, 0, len(req.SemesterGPA))
	for _, sg := range req.SemesterGPA {
		semesters = append(semesters, models.SemesterGPA{Semester: sg.Semester, GPA: sg.GPA})
	}

	record := &models.ScholarshipRequest{
		StudentID:      callerID,
		AmountRequired: req.AmountRequired,
		TotalReceived:  0,
		TotalCGPA:      req.TotalCGPA,
		SemesterGPA:    semesters,
		Reason:         req.Reason,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Scholarship().Save(ctx, record); err != nil {
		s.logger.Error("scholarship save failed", "student_id", callerID, "error", err)
		return nil, fmt.Errorf("%w: store scholarship request", ErrStorageFailure)
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeScholarshipSubmitted, map[string]any{
		"studentId":      callerID,
		"amountRequired": req.AmountRequired,
	})); err != nil {
		s.logger.Warn("event publish failed", "type", events.TypeScholarshipSubmitted, "error", err)
	}

	s.logger.Info("scholarship request submitted", "student_id", callerID, "amount_required", req.AmountRequired)
	return record, nil
}

func (s *scholarshipService) Get(ctx context.Context, studentID string) (*models.ScholarshipRequest, *models.Profile, error) {
	record, err := s.repo.Scholarship().GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("%w: load scholarship request", ErrStorageFailure)
	}

	if err := s.refreshTotal(ctx, record); err != nil {
		return nil, nil, err
	}

	profile, err := s.repo.Profile().GetByID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: load student profile", ErrStorageFailure)
		}
		// A request without a profile degrades to request-only output.
		profile = nil
	}

	return record, profile, nil
}

func (s *scholarshipService) ListAll(ctx context.Context) ([]*EnrichedScholarship, error) {
	records, err := s.repo.Scholarship().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list scholarship requests", ErrStorageFailure)
	}

	enriched := make([]*EnrichedScholarship, 0, len(records))
	for _, record := range records {
		if err := s.refreshTotal(ctx, record); err != nil {
			return nil, err
		}
		enriched = append(enriched, s.enrich(ctx, record))
	}
	return enriched, nil
}

// refreshTotal derives TotalReceived from the ledger. Deriving on read, not
// trusting the stored counter, is what keeps the total equal to the sum of
// ledger entries even when writers race.
func (s *scholarshipService) refreshTotal(ctx context.Context, record *models.ScholarshipRequest) error {
	total, err := s.repo.Contribution().SumByStudentSince(ctx, record.StudentID, record.CreatedAt)
	if err != nil {
		s.logger.Error("ledger sum failed", "student_id", record.StudentID, "error", err)
		return fmt.Errorf("%w: sum contributions", ErrStorageFailure)
	}
	record.TotalReceived = total
	return nil
}

// enrich joins one record with the owning student's display fields. Missing
// profiles degrade to placeholder text rather than failing the listing.
func (s *scholarshipService) enrich(ctx context.Context, record *models.ScholarshipRequest) *EnrichedScholarship {
	out := &EnrichedScholarship{
		ScholarshipRequest: record,
		StudentName:        "Unknown",
		StudentDepartment:  "Unknown",
		StudentYear:        "Unknown",
	}

	profile, err := s.repo.Profile().GetByID(ctx, record.StudentID)
	if err != nil || profile.Student == nil {
		return out
	}

	out.StudentName = profile.Name
	out.StudentDepartment = profile.Department
	out.StudentYear = profile.Student.Year
	out.StudentPhone = profile.Phone
	out.StudentEmail = deriveHandle(models.RoleStudent, profile.Student.RollNumber)
	return out
}
