package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// Assignment es una tarea de un curso.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CourseID    uint       `gorm:"not null;index" json:"course_id"`
	Course      Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"` // sin hora, formato YYYY-MM-DD
	MaxGrade    float64    `gorm:"type:numeric(5,2);not null;default:100" json:"max_grade"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	Creator     User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	IsActive    bool       `gorm:"default:true;not null" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

// Submission es la entrega de un alumno para una tarea. Solo existe una fila
// por (tarea, alumno): reenviar antes de la calificación sobreescribe.
type Submission struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssignmentID uint             `gorm:"not null;index:idx_assignment_student" json:"assignment_id"`
	Assignment   Assignment       `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	StudentID    uint             `gorm:"not null;index:idx_assignment_student" json:"student_id"`
	Student      User             `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FileURL      string           `gorm:"type:text;not null" json:"file_url"`
	Comments     *string          `gorm:"type:text" json:"comments"`
	Status       SubmissionStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	Grade        *float64         `gorm:"type:numeric(5,2)" json:"grade"`
	Feedback     *string          `gorm:"type:text" json:"feedback"`
	GradedBy     *uint            `json:"graded_by"`
	Grader       *User            `gorm:"foreignKey:GradedBy" json:"grader,omitempty"`
	GradedAt     *time.Time       `json:"graded_at"`
	SubmittedAt  time.Time        `gorm:"autoCreateTime" json:"submitted_at"`
}
