package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"   // Administrador del sistema
	RoleTeacher UserRole = "teacher" // Profesor (gestiona cursos y tareas)
	RoleStudent UserRole = "student" // Alumno (se inscribe y entrega tareas)
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"size:150;not null" json:"full_name"`
	Email        string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	Phone        *string    `gorm:"size:30" json:"phone"`
	Country      *string    `gorm:"size:100" json:"country"`
	AvatarURL    *string    `gorm:"type:text" json:"avatar_url"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	IsActive     bool       `gorm:"default:true;not null" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relaciones
	Enrollments []Enrollment `gorm:"foreignKey:UserID" json:"enrollments,omitempty"`
	Courses     []Course     `gorm:"foreignKey:TeacherID" json:"courses,omitempty"`
}

// PublicRole arma el objeto {id, name} que exponía la API original
// (la tabla roles usaba 1=admin, 2=teacher, 3=student).
func (u *User) PublicRole() map[string]interface{} {
	ids := map[UserRole]int{RoleAdmin: 1, RoleTeacher: 2, RoleStudent: 3}
	return map[string]interface{}{"id": ids[u.Role], "name": string(u.Role)}
}
