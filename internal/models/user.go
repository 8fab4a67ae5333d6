package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAlumni  UserRole = "alumni"
)

// StudentInfo carries the student-specific profile fields.
type StudentInfo struct {
	RollNumber string `json:"rollNumber"`
	Year       string `json:"year"`
	Semester   string `json:"semester"`
}

// AlumniInfo carries the alumni-specific profile fields.
type AlumniInfo struct {
	Email         string `json:"email"`
	PassedOutYear string `json:"passedOutYear"`
	LinkedIn      string `json:"linkedIn,omitempty"`
}

// Profile is the directory record for an identity. Exactly one of Student or
// Alumni is set, matching Role.
type Profile struct {
	ID         string   `json:"id"`
	Role       UserRole `json:"role"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone,omitempty"`
	Department string   `json:"department"`

	Student *StudentInfo `json:"student,omitempty"`
	Alumni  *AlumniInfo  `json:"alumni,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
