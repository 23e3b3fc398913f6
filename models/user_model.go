package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Rating is the derived aggregate stored on courses and teacher profiles.
// Always recomputed from the underlying review rows, never edited directly.
type Rating struct {
	Average float64 `gorm:"default:0" json:"average"`
	Count   int     `gorm:"default:0" json:"count"`
}

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	ProfileImage string `gorm:"size:255;default:''" json:"profile_image"`
	Bio          string `gorm:"size:500;default:''" json:"bio"`
	Phone        string `gorm:"size:50;default:''" json:"phone"`
	Address      string `gorm:"size:255;default:''" json:"address"`

	// Teacher profile
	Subjects      pq.StringArray `gorm:"type:text[]" json:"subjects"`
	Experience    int            `gorm:"default:0" json:"experience"`
	Education     string         `gorm:"default:''" json:"education"`
	HourlyRate    float64        `gorm:"type:numeric(10,2);default:0" json:"hourly_rate"`
	TeacherRating Rating         `gorm:"embedded;embeddedPrefix:teacher_rating_" json:"teacher_rating"`

	// Student profile
	Grade     string         `gorm:"size:50;default:''" json:"grade"`
	Interests pq.StringArray `gorm:"type:text[]" json:"interests"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	TeacherReviews []TeacherReview `gorm:"foreignkey:TeacherID" json:"teacher_reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeacherReview is a student's review of a teacher, tied to the course the
// student took with them. One row per (teacher, student) pair; a resubmission
// replaces the previous row.
type TeacherReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;uniqueIndex:idx_teacher_student_review" json:"teacher_id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_teacher_student_review" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null" json:"course_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
