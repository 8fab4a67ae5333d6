package models

import "time"

// SemesterGPA is one per-semester academic average on a 0-10 scale.
type SemesterGPA struct {
	Semester int     `json:"semester"`
	GPA      float64 `json:"gpa"`
}

// ScholarshipRequest is a student's funding ask. There is exactly one per
// student; re-submission overwrites the previous record. TotalReceived is
// derived from the contribution ledger on every read and is only persisted as
// a denormalized convenience value.
type ScholarshipRequest struct {
	StudentID      string        `json:"studentId"`
	AmountRequired int64         `json:"amountRequired"`
	TotalReceived  int64         `json:"totalReceived"`
	TotalCGPA      float64       `json:"totalCGPA"`
	SemesterGPA    []SemesterGPA `json:"semesterGPA,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Remaining returns the amount still needed to fully fund the request.
func (r *ScholarshipRequest) Remaining() int64 {
	return r.AmountRequired - r.TotalReceived
}

// Contribution is one immutable funding event from an alumnus to a student.
// Ledger entries are append-only; nothing in the service mutates or deletes
// them.
type Contribution struct {
	ID        string    `json:"id"`
	AlumniID  string    `json:"alumniId"`
	StudentID string    `json:"studentId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsSnapshot holds the portal-wide counters for the landing view. The
// three values come from independent scans and may reflect slightly
// different instants under concurrent writes.
type StatsSnapshot struct {
	ActiveAlumni            int64 `json:"activeAlumni"`
	StudentsWithScholarship int64 `json:"studentsWithScholarship"`
	TotalContributions      int64 `json:"totalContributions"`
}
