package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate records a generated course-completion certificate. One per
// (student, course); issued the first time progress reaches 100.
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID `gorm:"not null;uniqueIndex:idx_certificate_student_course" json:"student_id"`
	CourseID       uuid.UUID `gorm:"not null;uniqueIndex:idx_certificate_student_course" json:"course_id"`
	TeacherID      uuid.UUID `gorm:"not null" json:"teacher_id"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CertificateURL string    `gorm:"size:512;not null" json:"certificate_url"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
}
