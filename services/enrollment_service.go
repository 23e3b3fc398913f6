package services

import (
	"errors"
	"time"

	"github.com/edumart/course_market/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCourseFull = errors.New("course is full")

// Enroll appends a roster entry for the student. Idempotent: enrolling an
// already-enrolled student is a no-op. The caller must hold a row lock on the
// course (or run inside a serializing transaction) so the capacity check and
// the insert cannot interleave with a concurrent enrollment.
func Enroll(tx *gorm.DB, course *models.Course, studentID uuid.UUID) error {
	var existing int64
	if err := tx.Model(&models.Enrollment{}).
		Where("course_id = ? AND student_id = ?", course.ID, studentID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	var enrolled int64
	if err := tx.Model(&models.Enrollment{}).
		Where("course_id = ?", course.ID).
		Count(&enrolled).Error; err != nil {
		return err
	}
	if int(enrolled) >= course.MaxStudents {
		return ErrCourseFull
	}

	entry := models.Enrollment{
		CourseID:   course.ID,
		StudentID:  studentID,
		EnrolledAt: time.Now(),
		Progress:   0,
		Completed:  false,
	}
	return tx.Create(&entry).Error
}

// UpdateProgress sets the student's progress on a course, clamped to [0,100].
// Completed tracks whether progress reached 100. Returns ErrNotEnrolled when
// the student has no roster entry.
func UpdateProgress(tx *gorm.DB, courseID, studentID uuid.UUID, progress int) (models.Enrollment, error) {
	var entry models.Enrollment
	err := tx.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Enrollment{}, ErrNotEnrolled
		}
		return models.Enrollment{}, err
	}

	entry.Progress = models.ClampProgress(progress)
	entry.Completed = entry.Progress == 100
	if err := tx.Save(&entry).Error; err != nil {
		return models.Enrollment{}, err
	}
	return entry, nil
}

// Unenroll removes the student's roster entry. Used on refund; removing a
// student who is not on the roster is a no-op.
func Unenroll(tx *gorm.DB, courseID, studentID uuid.UUID) error {
	return tx.Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&models.Enrollment{}).Error
}
