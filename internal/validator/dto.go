package validator

import "github.com/alumbridge/scholarship-service/internal/models"

// SignupRequest is the registration payload for either role. Role-specific
// fields are enforced with required_if so a student signup without a roll
// number (or an alumni signup without an email) is rejected before any write.
type SignupRequest struct {
	Role       models.UserRole `json:"role" validate:"required,oneof=student alumni"`
	Name       string          `json:"name" validate:"required,max=100"`
	Phone      string          `json:"phone" validate:"omitempty,max=20"`
	Department string          `json:"department" validate:"required,max=100"`
	Password   string          `json:"password" validate:"required,min=6,max=72"`

	// Student fields.
	RollNumber string `json:"rollNumber" validate:"required_if=Role student,omitempty,max=30"`
	Year       string `json:"year" validate:"required_if=Role student,omitempty,max=10"`
	Semester   string `json:"semester" validate:"required_if=Role student,omitempty,max=10"`

	// Alumni fields.
	Email         string `json:"email" validate:"required_if=Role alumni,omitempty,email"`
	PassedOutYear string `json:"passedOutYear" validate:"omitempty,max=10"`
	LinkedIn      string `json:"linkedIn" validate:"omitempty,max=200"`
}

// LoginRequest authenticates with a role-scoped identifier: roll number for
// students, email for alumni.
type LoginRequest struct {
	Role       models.UserRole `json:"role" validate:"required,oneof=student alumni"`
	Identifier string          `json:"identifier" validate:"required,max=255"`
	Password   string          `json:"password" validate:"required"`
}

// SemesterGPARequest is one per-semester average in a scholarship submission.
type SemesterGPARequest struct {
	Semester int     `json:"semester" validate:"required,min=1,max=12"`
	GPA      float64 `json:"gpa" validate:"gpa"`
}

// SubmitScholarshipRequest creates or replaces the caller's funding record.
// StudentID is optional; when present it must match the caller.
type SubmitScholarshipRequest struct {
	StudentID      string               `json:"studentId" validate:"omitempty,max=255"`
	AmountRequired int64                `json:"amountRequired" validate:"required,gt=0"`
	TotalCGPA      float64              `json:"totalCGPA" validate:"gpa"`
	SemesterGPA    []SemesterGPARequest `json:"semesterGPA" validate:"omitempty,dive"`
	Reason         string               `json:"reason" validate:"omitempty,max=1000"`
}

// ContributeRequest records a funding event against a student's request.
type ContributeRequest struct {
	StudentID string `json:"studentId" validate:"required,max=255"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}
