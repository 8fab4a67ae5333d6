package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/events"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
	"github.com/alumbridge/scholarship-service/internal/validator"
)

// studentHandleDomain is appended to a roll number to synthesize a login
// handle, so students register without an external email address.
const studentHandleDomain = "@student.internal"

// deriveHandle resolves the gateway login handle for a role: roll number for
// students, email for alumni. Login applies the same rule, so the two paths
// can never disagree.
func deriveHandle(role models.UserRole, identifier string) string {
	if role == models.RoleStudent {
		return identifier + studentHandleDomain
	}
	return identifier
}

type directoryService struct {
	repo      repositories.Repository
	gateway   auth.Gateway
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDirectoryService(
	repo repositories.Repository,
	gateway auth.Gateway,
	publisher events.Publisher,
	logger *slog.Logger,
	v *validator.Validator,
) DirectoryService {
	return &directoryService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *directoryService) Register(ctx context.Context, req *validator.SignupRequest) (*models.Profile, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	if err := s.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	handle := deriveHandle(req.Role, s.identifierFor(req))
	id, err := s.gateway.Provision(ctx, handle, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateHandle) {
			return nil, ErrDuplicateIdentity
		}
		s.logger.Error("credential provisioning failed", "handle", handle, "error", err)
		return nil, fmt.Errorf("%w: provision credentials", ErrStorageFailure)
	}

	profile := buildProfile(id, req)
	if err := s.repo.Profile().Create(ctx, profile); err != nil {
		s.logger.Error("profile creation failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: store profile", ErrStorageFailure)
	}

	s.publish(ctx, events.NewEvent(events.TypeIdentityRegistered, map[string]any{
		"userId": id,
		"role":   req.Role,
	}))

	s.logger.Info("identity registered", "user_id", id, "role", req.Role)
	return profile, nil
}

func (s *directoryService) Authenticate(ctx context.Context, req *validator.LoginRequest) (string, *models.Profile, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return "", nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	handle := deriveHandle(req.Role, req.Identifier)
	token, id, err := s.gateway.Authenticate(ctx, handle, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("gateway authentication failed", "handle", handle, "error", err)
		return "", nil, fmt.Errorf("%w: authenticate", ErrStorageFailure)
	}

	profile, err := s.repo.Profile().GetByID(ctx, id)
	if err != nil {
		// The gateway accepted the secret but the directory has no row. That
		// is an inconsistency we cannot repair here; surface a generic
		// failure rather than a credential error.
		s.logger.Error("authenticated identity has no profile", "user_id", id, "error", err)
		return "", nil, fmt.Errorf("%w: load profile", ErrStorageFailure)
	}

	return token, profile, nil
}

func (s *directoryService) Get(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load profile", ErrStorageFailure)
	}
	return profile, nil
}

// checkDuplicate consults the secondary indexes before touching the gateway,
// so a duplicate roll number or email is reported without provisioning
// orphaned credentials.
func (s *directoryService) checkDuplicate(ctx context.Context, req *validator.SignupRequest) error {
	var err error
	if req.Role == models.RoleStudent {
		_, err = s.repo.Profile().ResolveRollNumber(ctx, req.RollNumber)
	} else {
		_, err = s.repo.Profile().ResolveEmail(ctx, req.Email)
	}

	if err == nil {
		return ErrDuplicateIdentity
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error("duplicate check failed", "error", err)
		return fmt.Errorf("%w: duplicate check", ErrStorageFailure)
	}
	return nil
}

func (s *directoryService) identifierFor(req *validator.SignupRequest) string {
	if req.Role == models.RoleStudent {
		return req.RollNumber
	}
	return req.Email
}

func (s *directoryService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", "type", event.Type, "error", err)
	}
}

func buildProfile(id string, req *validator.SignupRequest) *models.Profile {
	profile := &models.Profile{
		ID:         id,
		Role:       req.Role,
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
		CreatedAt:  time.Now().UTC(),
	}

	if req.Role == models.RoleStudent {
		profile.Student = &models.StudentInfo{
			RollNumber: req.RollNumber,
			Year:       req.Year,
			Semester:   req.Semester,
		}
	} else {
		profile.Alumni = &models.AlumniInfo{
			Email:         req.Email,
			PassedOutYear: req.PassedOutYear,
			LinkedIn:      req.LinkedIn,
		}
	}
	return profile
}
