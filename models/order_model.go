package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var (
	ErrAlreadyCompleted        = errors.New("order is already completed")
	ErrCannotCancelCompleted   = errors.New("cannot cancel completed order")
	ErrOnlyCompletedRefundable = errors.New("can only refund completed orders")
	ErrOrderTerminal           = errors.New("order is in a terminal state")
)

// Order links a student, a course, and the course's teacher at purchase time.
// The teacher reference and amount are copied from the course when the order
// is created; later course edits do not touch existing orders.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index:idx_order_student" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null;index" json:"course_id"`
	TeacherID uuid.UUID `gorm:"not null;index:idx_order_teacher" json:"teacher_id"`

	Amount        float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status        string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentMethod string  `gorm:"size:20;default:'cash'" json:"payment_method"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	TransactionID string  `gorm:"size:255;default:''" json:"transaction_id"`
	Notes         string  `gorm:"type:text;default:''" json:"notes"`

	RefundReason string     `gorm:"type:text;default:''" json:"refund_reason"`
	RefundedAt   *time.Time `json:"refunded_at"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	Teacher User   `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Complete moves a pending order to completed and marks it paid.
// The status machine is one-way: pending -> completed|cancelled,
// completed -> refunded. Nothing leaves cancelled or refunded.
func (o *Order) Complete(transactionID string) error {
	if o.Status == OrderCompleted {
		return ErrAlreadyCompleted
	}
	if o.Status != OrderPending {
		return ErrOrderTerminal
	}
	o.Status = OrderCompleted
	o.PaymentStatus = PaymentPaid
	o.TransactionID = transactionID
	return nil
}

// Cancel moves a pending order to cancelled, recording the reason in notes.
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderCompleted {
		return ErrCannotCancelCompleted
	}
	if o.Status != OrderPending {
		return ErrOrderTerminal
	}
	o.Status = OrderCancelled
	o.Notes = reason
	return nil
}

// Refund moves a completed order to refunded and stamps refunded_at.
func (o *Order) Refund(reason string, at time.Time) error {
	if o.Status != OrderCompleted {
		return ErrOnlyCompletedRefundable
	}
	o.Status = OrderRefunded
	o.PaymentStatus = PaymentRefunded
	o.RefundReason = reason
	o.RefundedAt = &at
	return nil
}
