package models

import (
	"time"
)

// ClassRecording es una clase grabada visible para alumnos aprobados.
type ClassRecording struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CourseID        uint      `gorm:"not null;index" json:"course_id"`
	Course          Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description"`
	VideoURL        string    `gorm:"type:text;not null" json:"video_url"`
	DurationMinutes int       `json:"duration_minutes"`
	ClassNumber     int       `json:"class_number"` // orden dentro del curso
	IsActive        bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CourseMaterial es material de apoyo (PDF, guías, etc.) de un curso.
type CourseMaterial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"not null;index" json:"course_id"`
	Course      Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"type:text;not null" json:"file_url"`
	FileType    string    `gorm:"size:50" json:"file_type"`
	IsActive    bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
