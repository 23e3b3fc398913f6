package handlers

import (
	"testing"

	"github.com/edumart/course_market/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanActOnOrder(t *testing.T) {
	owner := uuid.New()
	order := models.Order{StudentID: owner, TeacherID: uuid.New()}

	assert.True(t, canActOnOrder(owner, models.RoleStudent, order))
	assert.True(t, canActOnOrder(uuid.New(), models.RoleAdmin, order))

	assert.False(t, canActOnOrder(uuid.New(), models.RoleStudent, order))
	assert.False(t, canActOnOrder(uuid.New(), models.RoleTeacher, order))
	assert.False(t, canActOnOrder(order.TeacherID, models.RoleTeacher, order))
}
