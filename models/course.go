package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CourseModality string

const (
	ModalityOnline     CourseModality = "online"
	ModalityPresencial CourseModality = "presencial"
	ModalityHybrid     CourseModality = "hybrid"
)

// ValidModality valida el filtro de modalidad que llega por query string.
func ValidModality(m string) bool {
	switch CourseModality(m) {
	case ModalityOnline, ModalityPresencial, ModalityHybrid:
		return true
	}
	return false
}

type Course struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Slug         string         `gorm:"size:255;uniqueIndex" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	ScheduleDays string         `gorm:"size:100" json:"schedule_days"` // ej: "Lunes y Miércoles"
	ScheduleTime string         `gorm:"size:100" json:"schedule_time"` // ej: "19:00 - 21:00"
	Shift        string         `gorm:"size:50" json:"shift"`          // mañana / tarde / noche
	TotalClasses int            `json:"total_classes"`
	TotalHours   int            `json:"total_hours"`
	PriceCOP     *float64       `gorm:"type:numeric(12,2)" json:"price_cop"`
	PriceUSD     *float64       `gorm:"type:numeric(12,2)" json:"price_usd"`
	ImageURL     *string        `gorm:"type:text" json:"image_url"`
	Modality     CourseModality `gorm:"type:varchar(20);not null;default:'online'" json:"modality"`
	TeacherID    *uint          `json:"teacher_id"`
	Teacher      *User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	IsActive     bool           `gorm:"default:true;not null" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Assignments []Assignment     `gorm:"foreignKey:CourseID" json:"assignments,omitempty"`
	Recordings  []ClassRecording `gorm:"foreignKey:CourseID" json:"recordings,omitempty"`
	Materials   []CourseMaterial `gorm:"foreignKey:CourseID" json:"materials,omitempty"`
}

// BeforeCreate genera el slug a partir del título si no viene uno.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Title)
	}
	return nil
}

// Schedule agrupa los campos de horario tal como los anida la API
// ({days, time, shift}) en get_all y en los dashboards.
func (c *Course) Schedule() map[string]interface{} {
	return map[string]interface{}{
		"days":  c.ScheduleDays,
		"time":  c.ScheduleTime,
		"shift": c.Shift,
	}
}

// Price agrupa los precios en las dos monedas.
func (c *Course) Price() map[string]interface{} {
	return map[string]interface{}{
		"cop": c.PriceCOP,
		"usd": c.PriceUSD,
	}
}
