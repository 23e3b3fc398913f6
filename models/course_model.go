package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	MaterialTypeVideo    = "video"
	MaterialTypeDocument = "document"
	MaterialTypeLink     = "link"
	MaterialTypeQuiz     = "quiz"
)

// ValidMaterialType reports whether t is one of the four material kinds.
func ValidMaterialType(t string) bool {
	switch t {
	case MaterialTypeVideo, MaterialTypeDocument, MaterialTypeLink, MaterialTypeQuiz:
		return true
	}
	return false
}

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	TeacherID   uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	Level       string    `gorm:"size:20;default:'beginner'" json:"level"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Duration    float64   `gorm:"not null" json:"duration"`
	Thumbnail   string    `gorm:"size:255;default:''" json:"thumbnail"`
	MaxStudents int       `gorm:"default:50" json:"max_students"`

	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	LearningOutcomes pq.StringArray `gorm:"type:text[]" json:"learning_outcomes"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`

	Rating Rating `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`

	IsPublished bool `gorm:"default:false" json:"is_published"`
	IsActive    bool `gorm:"default:true" json:"is_active"`

	Teacher          User           `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Materials        []Material     `gorm:"foreignkey:CourseID" json:"materials,omitempty"`
	Syllabus         []SyllabusItem `gorm:"foreignkey:CourseID" json:"syllabus,omitempty"`
	EnrolledStudents []Enrollment   `gorm:"foreignkey:CourseID" json:"enrolled_students,omitempty"`
	Reviews          []CourseReview `gorm:"foreignkey:CourseID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Material is an owned child of Course, addressed by its own id rather than
// by position so concurrent deletes cannot shift what an update points at.
type Material struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID `gorm:"not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	URL         string    `gorm:"size:512;not null" json:"url"`
	Description string    `gorm:"type:text;default:''" json:"description"`
	Duration    float64   `gorm:"default:0" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
}

type SyllabusItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID    uuid.UUID `gorm:"not null;index" json:"course_id"`
	Week        int       `gorm:"not null" json:"week"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

// Enrollment is one roster entry. The unique index over (course, student)
// backs the at-most-once invariant even if two requests race past the
// application-level check.
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID   uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID  uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student" json:"student_id"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`
	Progress   int       `gorm:"default:0" json:"progress"`
	Completed  bool      `gorm:"default:false" json:"completed"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
}

// CourseReview is a student's review of a course. One row per
// (course, student); resubmitting replaces the old row.
type CourseReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID  uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student_review" json:"course_id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_course_student_review" json:"student_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FindEnrollment returns the roster entry for student, or nil.
func FindEnrollment(roster []Enrollment, studentID uuid.UUID) *Enrollment {
	for i := range roster {
		if roster[i].StudentID == studentID {
			return &roster[i]
		}
	}
	return nil
}

// ClampProgress bounds p to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
