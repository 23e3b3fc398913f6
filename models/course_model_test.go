package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidMaterialType(t *testing.T) {
	for _, valid := range []string{"video", "document", "link", "quiz"} {
		assert.True(t, ValidMaterialType(valid), valid)
	}
	for _, invalid := range []string{"", "pdf", "Video", "audio"} {
		assert.False(t, ValidMaterialType(invalid), invalid)
	}
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, ClampProgress(-20))
	assert.Equal(t, 0, ClampProgress(0))
	assert.Equal(t, 55, ClampProgress(55))
	assert.Equal(t, 100, ClampProgress(100))
	assert.Equal(t, 100, ClampProgress(250))
}

func TestFindEnrollment(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	roster := []Enrollment{
		{StudentID: alice, Progress: 30},
		{StudentID: bob, Progress: 80},
	}

	entry := FindEnrollment(roster, bob)
	assert.NotNil(t, entry)
	assert.Equal(t, 80, entry.Progress)

	assert.Nil(t, FindEnrollment(roster, uuid.New()))
	assert.Nil(t, FindEnrollment(nil, alice))
}
