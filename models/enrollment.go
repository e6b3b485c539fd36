package models

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// ValidEnrollmentStatus valida el status recibido en approve_enrollment.
func ValidEnrollmentStatus(s string) bool {
	switch EnrollmentStatus(s) {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected, EnrollmentCancelled:
		return true
	}
	return false
}

// Enrollment es la inscripción de un alumno a un curso, con su estado de
// pago y aprobación. Nace en 'pending' y el admin la aprueba o rechaza.
type Enrollment struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	User            User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID        uint             `gorm:"not null;index" json:"course_id"`
	Course          Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	PaymentMethod   *string          `gorm:"size:50" json:"payment_method"`
	PaymentProofURL *string          `gorm:"type:text" json:"payment_proof_url"`
	AmountPaid      *float64         `gorm:"type:numeric(12,2)" json:"amount_paid"`
	Status          EnrollmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           *string          `gorm:"type:text" json:"notes"`
	ApprovedBy      *uint            `json:"approved_by"`
	Approver        *User            `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
