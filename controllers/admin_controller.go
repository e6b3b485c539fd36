package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
	"github.com/escueladux/escuela-dux-backend/ws"
)

type ApproveEnrollmentInput struct {
	EnrollmentID uint    `json:"enrollment_id" binding:"required"`
	Status       string  `json:"status" binding:"required"`
	AdminID      *uint   `json:"admin_id"`
	Notes        *string `json:"notes"`
}

type popularCourse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	EnrollmentCount int64  `json:"enrollment_count"`
}

// GET /api/admin/get_stats
// Totales generales, cifras del mes en curso, actividad reciente y los
// cursos con más inscripciones aprobadas.
func GetStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var totalStudents, totalTeachers, totalCourses, pendingEnrollments int64
	db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&totalTeachers)
	db.Model(&models.Course{}).Where("is_active = ?", true).Count(&totalCourses)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentPending).Count(&pendingEnrollments)

	// Mes calendario en curso
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var monthlyEnrollments int64
	db.Model(&models.Enrollment{}).
		Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
		Count(&monthlyEnrollments)

	// Ingresos del mes: inscripciones aprobadas por fecha de aprobación
	var monthlyRevenue float64
	db.Model(&models.Enrollment{}).
		Where("status = ? AND approved_at >= ? AND approved_at < ?",
			models.EnrollmentApproved, monthStart, monthEnd).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&monthlyRevenue)

	// Últimas 10 inscripciones
	var recent []models.Enrollment
	db.Preload("User").Preload("Course").
		Order("created_at DESC").
		Limit(10).
		Find(&recent)

	recentActivity := make([]gin.H, 0, len(recent))
	for _, e := range recent {
		recentActivity = append(recentActivity, gin.H{
			"id":           e.ID,
			"student_name": e.User.FullName,
			"course_title": e.Course.Title,
			"status":       e.Status,
			"created_at":   e.CreatedAt,
		})
	}

	var popular []popularCourse
	db.Raw(`
		SELECT c.id, c.title, COUNT(e.id) AS enrollment_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.status = 'approved'
		WHERE c.is_active = ?
		GROUP BY c.id, c.title
		ORDER BY enrollment_count DESC
		LIMIT 5
	`, true).Scan(&popular)

	popularList := make([]gin.H, 0, len(popular))
	for _, p := range popular {
		popularList = append(popularList, gin.H{
			"id":          p.ID,
			"title":       p.Title,
			"enrollments": p.EnrollmentCount,
		})
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"stats": gin.H{
			"total_students":      totalStudents,
			"total_teachers":      totalTeachers,
			"total_courses":       totalCourses,
			"pending_enrollments": pendingEnrollments,
			"monthly_enrollments": monthlyEnrollments,
			"monthly_revenue":     monthlyRevenue,
		},
		"recent_activity": recentActivity,
		"popular_courses": popularList,
	})
}

// GET /api/admin/get_users
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		switch models.UserRole(role) {
		case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
			query = query.Where("role = ?", role)
		}
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}

	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener usuarios")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener usuarios")
		return
	}

	formatted := make([]gin.H, 0, len(users))
	for i := range users {
		u := &users[i]
		formatted = append(formatted, gin.H{
			"id":         u.ID,
			"full_name":  u.FullName,
			"email":      u.Email,
			"phone":      u.Phone,
			"country":    u.Country,
			"avatar_url": u.AvatarURL,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt,
			"last_login": u.LastLogin,
			"role":       u.PublicRole(),
		})
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"users":      formatted,
		"pagination": utils.PaginationMeta(page, limit, total),
	})
}

// GET /api/admin/get_enrollments
func GetEnrollments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Enrollment{}).
		Preload("User").Preload("Course").Preload("Approver")

	if status := c.Query("status"); status != "" && models.ValidEnrollmentStatus(status) {
		query = query.Where("status = ?", status)
	}
	if courseID, err := strconv.Atoi(c.Query("course_id")); err == nil && courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener inscripciones")
		return
	}

	var enrollments []models.Enrollment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&enrollments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener inscripciones")
		return
	}

	formatted := make([]gin.H, 0, len(enrollments))
	for _, e := range enrollments {
		var approvedBy interface{}
		if e.Approver != nil {
			approvedBy = e.Approver.FullName
		}
		formatted = append(formatted, gin.H{
			"id": e.ID,
			"student": gin.H{
				"id":    e.User.ID,
				"name":  e.User.FullName,
				"email": e.User.Email,
			},
			"course": gin.H{
				"id":    e.Course.ID,
				"title": e.Course.Title,
			},
			"payment_method":    e.PaymentMethod,
			"payment_proof_url": e.PaymentProofURL,
			"amount_paid":       e.AmountPaid,
			"status":            e.Status,
			"notes":             e.Notes,
			"created_at":        e.CreatedAt,
			"approved_at":       e.ApprovedAt,
			"approved_by":       approvedBy,
		})
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"enrollments": formatted,
		"pagination":  utils.PaginationMeta(page, limit, total),
	})
}

// POST /api/admin/approve_enrollment
// Cambia el estado de una inscripción. Los cuatro estados se aceptan en
// cualquier momento (repetir la decisión sobreescribe, no acumula);
// approved_at/approved_by solo se escriben al aprobar.
func ApproveEnrollment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ApproveEnrollmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "ID de inscripción y status son requeridos")
		return
	}

	if !models.ValidEnrollmentStatus(input.Status) {
		utils.Error(c, http.StatusBadRequest, "Status inválido. Use: pending, approved, rejected, cancelled")
		return
	}

	var enrollment models.Enrollment
	if err := db.Preload("User").Preload("Course").
		First(&enrollment, input.EnrollmentID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Inscripción no encontrada")
		return
	}

	updates := map[string]interface{}{
		"status": input.Status,
		"notes":  input.Notes,
	}
	if input.Status == string(models.EnrollmentApproved) {
		updates["approved_at"] = time.Now()
		if input.AdminID != nil {
			updates["approved_by"] = *input.AdminID
		}
	}

	if err := db.Model(&enrollment).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al procesar la inscripción")
		return
	}
	db.First(&enrollment, enrollment.ID)

	ws.BroadcastEnrollmentsChanged()
	notifyEnrollmentDecision(&enrollment)

	messages := map[string]string{
		"approved":  "Inscripción aprobada exitosamente",
		"rejected":  "Inscripción rechazada",
		"pending":   "Inscripción marcada como pendiente",
		"cancelled": "Inscripción cancelada",
	}

	utils.Success(c, http.StatusOK, messages[input.Status], gin.H{
		"enrollment": gin.H{
			"id":           enrollment.ID,
			"student_name": enrollment.User.FullName,
			"course_title": enrollment.Course.Title,
			"status":       enrollment.Status,
			"approved_at":  enrollment.ApprovedAt,
			"notes":        enrollment.Notes,
		},
	})
}

// GET /api/admin/export_enrollments
// Exporta las inscripciones a un .xlsx con los mismos filtros del listado.
func ExportEnrollments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Enrollment{}).
		Preload("User").Preload("Course")
	if status := c.Query("status"); status != "" && models.ValidEnrollmentStatus(status) {
		query = query.Where("status = ?", status)
	}
	if courseID, err := strconv.Atoi(c.Query("course_id")); err == nil && courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var enrollments []models.Enrollment
	if err := query.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener inscripciones")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inscripciones"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Alumno", "Email", "Curso", "Método de pago", "Monto", "Estado", "Notas", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, e := range enrollments {
		values := []interface{}{
			e.ID,
			e.User.FullName,
			e.User.Email,
			e.Course.Title,
			deref(e.PaymentMethod),
			derefFloat(e.AmountPaid),
			string(e.Status),
			deref(e.Notes),
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("inscripciones_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Println("Error al exportar inscripciones:", err)
	}
}

// notifyEnrollmentDecision avisa al alumno por email cuando su inscripción
// se aprueba o rechaza. No bloquea la respuesta.
func notifyEnrollmentDecision(e *models.Enrollment) {
	if e.Status != models.EnrollmentApproved && e.Status != models.EnrollmentRejected {
		return
	}
	email := e.User.Email
	name := e.User.FullName
	course := e.Course.Title
	status := e.Status

	go func() {
		statusWord := map[models.EnrollmentStatus]string{
			models.EnrollmentApproved: "aprobada",
			models.EnrollmentRejected: "rechazada",
		}[status]
		subject := "Tu inscripción en Escuela DUX fue " + statusWord
		body := fmt.Sprintf(`
		<h3>Hola %s,</h3>
		<p>Tu inscripción al curso <b>%s</b> fue <b>%s</b>.</p>
		<hr>
		<p><i>Este es un correo automático, por favor no respondas.</i></p>
		`, name, course, statusWord)
		if err := utils.SendEmail(email, subject, body); err != nil {
			log.Println("Error al enviar email de inscripción:", err)
		}
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
