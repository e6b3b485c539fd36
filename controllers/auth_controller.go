package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
)

// ====== INPUT STRUCTS ======
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	Password      string  `json:"password" binding:"required"`
	CourseID      uint    `json:"course_id" binding:"required"`
	Phone         *string `json:"phone"`
	Country       *string `json:"country"`
	PaymentMethod *string `json:"payment_method"`
}

// ====== HANDLERS ======

// POST /api/auth/login
func Login(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !utils.IsValidEmail(email) {
		utils.Error(c, http.StatusBadRequest, "Formato de email inválido")
		return
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// Mismo mensaje que contraseña errónea para no revelar si el email existe
		utils.Error(c, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}

	if !user.IsActive {
		utils.Error(c, http.StatusForbidden, "Tu cuenta está desactivada. Contacta al administrador.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}

	// Actualizar último login
	now := time.Now()
	db.Model(&user).Update("last_login", &now)

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}

	utils.Success(c, http.StatusOK, "Inicio de sesión exitoso", gin.H{
		"user": gin.H{
			"id":         user.ID,
			"full_name":  user.FullName,
			"email":      user.Email,
			"phone":      user.Phone,
			"avatar_url": user.AvatarURL,
			"role":       user.PublicRole(),
		},
		"token": token,
	})
}

// POST /api/auth/register
// Crea el alumno y su inscripción pendiente en una sola transacción:
// o existen las dos filas, o ninguna.
func Register(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "Nombre, email, contraseña y curso son requeridos")
		return
	}

	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if !utils.IsValidEmail(email) {
		utils.Error(c, http.StatusBadRequest, "Formato de email inválido")
		return
	}
	if len(input.Password) < 4 {
		utils.Error(c, http.StatusBadRequest, "La contraseña debe tener al menos 4 caracteres")
		return
	}
	if len([]rune(fullName)) < 3 {
		utils.Error(c, http.StatusBadRequest, "El nombre debe tener al menos 3 caracteres")
		return
	}

	// Verificar email duplicado
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(c, http.StatusConflict, "Este email ya está registrado")
		return
	}

	// Verificar que el curso existe y está activo
	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", input.CourseID, true).First(&course).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "El curso seleccionado no existe o no está disponible")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "No se pudo procesar la contraseña")
		return
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        input.Phone,
		Country:      input.Country,
		Role:         models.RoleStudent,
	}
	enrollment := models.Enrollment{
		CourseID:      course.ID,
		PaymentMethod: input.PaymentMethod,
		Status:        models.EnrollmentPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		enrollment.UserID = user.ID
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al procesar el registro")
		return
	}

	utils.Success(c, http.StatusOK, "Registro exitoso. Tu inscripción está pendiente de aprobación.", gin.H{
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.PublicRole(),
		},
		"enrollment": gin.H{
			"id":     enrollment.ID,
			"course": course.Title,
			"status": enrollment.Status,
		},
	})
}
