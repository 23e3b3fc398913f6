package services

import (
	"errors"

	"github.com/edumart/course_market/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotEnrolled      = errors.New("student is not enrolled in this course")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// RecomputeRating derives the stored aggregate from the individual ratings.
// Empty input yields the zero aggregate.
func RecomputeRating(ratings []int) models.Rating {
	if len(ratings) == 0 {
		return models.Rating{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return models.Rating{
		Average: float64(sum) / float64(len(ratings)),
		Count:   len(ratings),
	}
}

// AddOrReplaceCourseReview inserts the student's review of a course, replacing
// any earlier one, and recomputes the course aggregate from the review rows.
// Runs on the caller's transaction so the replace and the recompute commit
// together.
func AddOrReplaceCourseReview(tx *gorm.DB, course *models.Course, studentID uuid.UUID, rating int, comment string) (models.CourseReview, error) {
	if rating < 1 || rating > 5 {
		return models.CourseReview{}, ErrRatingOutOfRange
	}

	var enrolled int64
	if err := tx.Model(&models.Enrollment{}).
		Where("course_id = ? AND student_id = ?", course.ID, studentID).
		Count(&enrolled).Error; err != nil {
		return models.CourseReview{}, err
	}
	if enrolled == 0 {
		return models.CourseReview{}, ErrNotEnrolled
	}

	if err := tx.Where("course_id = ? AND student_id = ?", course.ID, studentID).
		Delete(&models.CourseReview{}).Error; err != nil {
		return models.CourseReview{}, err
	}

	review := models.CourseReview{
		CourseID:  course.ID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := tx.Create(&review).Error; err != nil {
		return models.CourseReview{}, err
	}

	ratings, err := collectRatings(tx, &models.CourseReview{}, "course_id", course.ID)
	if err != nil {
		return models.CourseReview{}, err
	}
	course.Rating = RecomputeRating(ratings)

	err = tx.Model(&models.Course{}).Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"rating_average": course.Rating.Average,
			"rating_count":   course.Rating.Count,
		}).Error
	return review, err
}

// AddOrReplaceTeacherReview inserts the student's review of a teacher,
// replacing any earlier one, and recomputes the teacher aggregate. The caller
// is responsible for verifying that the course belongs to the teacher and
// that the student took it; this function only enforces the rating bounds and
// the replace-by-student rule.
func AddOrReplaceTeacherReview(tx *gorm.DB, teacherID, studentID, courseID uuid.UUID, rating int, comment string) (models.TeacherReview, error) {
	if rating < 1 || rating > 5 {
		return models.TeacherReview{}, ErrRatingOutOfRange
	}

	if err := tx.Where("teacher_id = ? AND student_id = ?", teacherID, studentID).
		Delete(&models.TeacherReview{}).Error; err != nil {
		return models.TeacherReview{}, err
	}

	review := models.TeacherReview{
		TeacherID: teacherID,
		StudentID: studentID,
		CourseID:  courseID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := tx.Create(&review).Error; err != nil {
		return models.TeacherReview{}, err
	}

	ratings, err := collectRatings(tx, &models.TeacherReview{}, "teacher_id", teacherID)
	if err != nil {
		return models.TeacherReview{}, err
	}
	agg := RecomputeRating(ratings)

	err = tx.Model(&models.User{}).Where("id = ?", teacherID).
		Updates(map[string]interface{}{
			"teacher_rating_average": agg.Average,
			"teacher_rating_count":   agg.Count,
		}).Error
	return review, err
}

func collectRatings(tx *gorm.DB, model interface{}, ownerColumn string, ownerID uuid.UUID) ([]int, error) {
	var ratings []int
	err := tx.Model(model).Where(ownerColumn+" = ?", ownerID).Pluck("rating", &ratings).Error
	return ratings, err
}
