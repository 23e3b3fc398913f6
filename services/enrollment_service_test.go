package services

import (
	"testing"

	"github.com/edumart/course_market/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openRosterDB opens an in-memory database with just the enrollments table.
// The schema is created by hand: the uuid default in the model tag is a
// postgres function.
func openRosterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE enrollments (
		id text PRIMARY KEY DEFAULT (
			lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' ||
			lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' ||
			lower(hex(randomblob(6)))
		),
		course_id text NOT NULL,
		student_id text NOT NULL,
		enrolled_at datetime NOT NULL,
		progress integer NOT NULL DEFAULT 0,
		completed numeric NOT NULL DEFAULT false,
		CONSTRAINT idx_course_student UNIQUE (course_id, student_id)
	)`).Error
	require.NoError(t, err)
	return db
}

func rosterSize(t *testing.T, db *gorm.DB, courseID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error)
	return n
}

func TestEnrollRejectsWhenFull(t *testing.T) {
	db := openRosterDB(t)
	course := models.Course{ID: uuid.New(), MaxStudents: 1}

	require.NoError(t, Enroll(db, &course, uuid.New()))

	err := Enroll(db, &course, uuid.New())
	assert.ErrorIs(t, err, ErrCourseFull)
	assert.EqualValues(t, 1, rosterSize(t, db, course.ID))
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := openRosterDB(t)
	course := models.Course{ID: uuid.New(), MaxStudents: 1}
	student := uuid.New()

	require.NoError(t, Enroll(db, &course, student))

	// Re-enrolling is a no-op even with the roster at capacity.
	assert.NoError(t, Enroll(db, &course, student))
	assert.NoError(t, Enroll(db, &course, student))
	assert.EqualValues(t, 1, rosterSize(t, db, course.ID))
}

func TestEnrollSequenceNeverExceedsCapacity(t *testing.T) {
	db := openRosterDB(t)
	course := models.Course{ID: uuid.New(), MaxStudents: 3}

	admitted := 0
	for i := 0; i < 8; i++ {
		err := Enroll(db, &course, uuid.New())
		if err == nil {
			admitted++
		} else {
			assert.ErrorIs(t, err, ErrCourseFull)
		}
	}
	assert.Equal(t, 3, admitted)
	assert.EqualValues(t, 3, rosterSize(t, db, course.ID))
}

func TestUpdateProgressNotEnrolled(t *testing.T) {
	db := openRosterDB(t)

	_, err := UpdateProgress(db, uuid.New(), uuid.New(), 50)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestUpdateProgressClampsAndCompletes(t *testing.T) {
	db := openRosterDB(t)
	course := models.Course{ID: uuid.New(), MaxStudents: 10}
	student := uuid.New()
	require.NoError(t, Enroll(db, &course, student))

	entry, err := UpdateProgress(db, course.ID, student, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, entry.Progress)
	assert.True(t, entry.Completed)

	entry, err = UpdateProgress(db, course.ID, student, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, entry.Progress)
	assert.False(t, entry.Completed)
}

func TestUnenroll(t *testing.T) {
	db := openRosterDB(t)
	course := models.Course{ID: uuid.New(), MaxStudents: 10}
	student := uuid.New()
	require.NoError(t, Enroll(db, &course, student))

	require.NoError(t, Unenroll(db, course.ID, student))
	assert.EqualValues(t, 0, rosterSize(t, db, course.ID))

	// Removing an absent student is a no-op.
	assert.NoError(t, Unenroll(db, course.ID, student))
}
