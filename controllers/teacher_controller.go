package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
	"github.com/escueladux/escuela-dux-backend/ws"
)

type CreateAssignmentInput struct {
	CourseID    uint     `json:"course_id" binding:"required"`
	TeacherID   uint     `json:"teacher_id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description *string  `json:"description"`
	DueDate     *string  `json:"due_date"` // YYYY-MM-DD
	MaxGrade    *float64 `json:"max_grade"`
}

type GradeSubmissionInput struct {
	SubmissionID uint     `json:"submission_id" binding:"required"`
	TeacherID    uint     `json:"teacher_id" binding:"required"`
	Grade        *float64 `json:"grade" binding:"required"`
	Feedback     *string  `json:"feedback"`
}

// GET /api/teacher/dashboard_data
// Cursos asignados al profesor, alumnos inscritos y entregas por calificar.
func TeacherDashboard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	teacherID, err := strconv.Atoi(c.Query("teacher_id"))
	if err != nil || teacherID <= 0 {
		utils.Error(c, http.StatusBadRequest, "teacher_id es requerido")
		return
	}

	var teacher models.User
	if err := db.Where("id = ? AND role = ?", teacherID, models.RoleTeacher).First(&teacher).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Profesor no encontrado")
		return
	}

	var courses []models.Course
	if err := db.Where("teacher_id = ? AND is_active = ?", teacherID, true).
		Order("title").
		Find(&courses).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener datos del dashboard")
		return
	}

	courseList := make([]gin.H, 0, len(courses))
	for i := range courses {
		var studentCount int64
		db.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courses[i].ID, models.EnrollmentApproved).
			Count(&studentCount)
		courseList = append(courseList, gin.H{
			"id":            courses[i].ID,
			"title":         courses[i].Title,
			"description":   courses[i].Description,
			"schedule":      courses[i].Schedule(),
			"total_classes": courses[i].TotalClasses,
			"total_hours":   courses[i].TotalHours,
			"modality":      courses[i].Modality,
			"student_count": studentCount,
		})
	}

	// Alumnos con inscripción aprobada en cursos del profesor
	var approved []models.Enrollment
	db.Preload("User").Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("courses.teacher_id = ? AND enrollments.status = ?", teacherID, models.EnrollmentApproved).
		Order("courses.title, users.full_name").
		Find(&approved)

	uniqueStudents := map[uint]bool{}
	studentList := make([]gin.H, 0, len(approved))
	for _, e := range approved {
		uniqueStudents[e.UserID] = true
		studentList = append(studentList, gin.H{
			"id":         e.User.ID,
			"name":       e.User.FullName,
			"email":      e.User.Email,
			"avatar_url": e.User.AvatarURL,
			"course": gin.H{
				"id":    e.Course.ID,
				"title": e.Course.Title,
			},
			"enrolled_at": e.CreatedAt,
		})
	}

	// Entregas pendientes de calificar
	var pendingSubs []models.Submission
	db.Preload("Assignment").Preload("Assignment.Course").Preload("Student").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("courses.teacher_id = ? AND submissions.status = ?", teacherID, models.SubmissionSubmitted).
		Order("submissions.submitted_at ASC").
		Find(&pendingSubs)

	pendingList := make([]gin.H, 0, len(pendingSubs))
	for _, s := range pendingSubs {
		pendingList = append(pendingList, gin.H{
			"id": s.ID,
			"assignment": gin.H{
				"id":    s.Assignment.ID,
				"title": s.Assignment.Title,
			},
			"student": gin.H{
				"id":   s.Student.ID,
				"name": s.Student.FullName,
			},
			"course": gin.H{
				"id":    s.Assignment.Course.ID,
				"title": s.Assignment.Course.Title,
			},
			"file_url":     s.FileURL,
			"submitted_at": s.SubmittedAt,
		})
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"teacher": gin.H{
			"id":   teacher.ID,
			"name": teacher.FullName,
		},
		"stats": gin.H{
			"total_courses":  len(courses),
			"total_students": len(uniqueStudents),
			"pending_grades": len(pendingSubs),
		},
		"courses":             courseList,
		"students":            studentList,
		"pending_submissions": pendingList,
	})
}

// POST /api/teacher/create_assignment
func CreateAssignment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "Curso, título y profesor son requeridos")
		return
	}

	if len([]rune(input.Title)) < 3 {
		utils.Error(c, http.StatusBadRequest, "El título debe tener al menos 3 caracteres")
		return
	}

	// El curso debe existir y pertenecer al profesor
	var course models.Course
	if err := db.Where("id = ? AND teacher_id = ?", input.CourseID, input.TeacherID).
		First(&course).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Curso no encontrado o no tienes permisos")
		return
	}

	var dueDate *time.Time
	if input.DueDate != nil && *input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Formato de fecha inválido. Use YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	maxGrade := 100.0
	if input.MaxGrade != nil {
		maxGrade = *input.MaxGrade
	}

	assignment := models.Assignment{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
		MaxGrade:    maxGrade,
		CreatedBy:   input.TeacherID,
	}
	if err := db.Create(&assignment).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al crear la tarea")
		return
	}

	utils.Success(c, http.StatusOK, "Tarea creada exitosamente", gin.H{
		"assignment": gin.H{
			"id":           assignment.ID,
			"course_id":    assignment.CourseID,
			"course_title": course.Title,
			"title":        assignment.Title,
			"description":  assignment.Description,
			"due_date":     formatDueDate(assignment.DueDate),
			"max_grade":    assignment.MaxGrade,
			"created_at":   assignment.CreatedAt,
		},
	})
}

// POST /api/teacher/grade_submission
// La nota fuera de [0, 100] se rechaza; la que supera el máximo de la tarea
// se ajusta al máximo en silencio (no es un error).
func GradeSubmission(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input GradeSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "ID de entrega, calificación y profesor son requeridos")
		return
	}

	if *input.Grade < 0 || *input.Grade > 100 {
		utils.Error(c, http.StatusBadRequest, "La calificación debe estar entre 0 y 100")
		return
	}

	var submission models.Submission
	if err := db.Preload("Assignment").Preload("Assignment.Course").Preload("Student").
		First(&submission, input.SubmissionID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Entrega no encontrada")
		return
	}

	course := submission.Assignment.Course
	if course.TeacherID == nil || *course.TeacherID != input.TeacherID {
		utils.Error(c, http.StatusForbidden, "No tienes permisos para calificar esta entrega")
		return
	}

	grade := clampGrade(*input.Grade, submission.Assignment.MaxGrade)
	now := time.Now()

	if err := db.Model(&submission).Updates(map[string]interface{}{
		"grade":     grade,
		"feedback":  input.Feedback,
		"graded_by": input.TeacherID,
		"graded_at": now,
		"status":    models.SubmissionGraded,
	}).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al guardar calificación")
		return
	}

	ws.BroadcastSubmissionsChanged()

	utils.Success(c, http.StatusOK, "Calificación guardada exitosamente", gin.H{
		"submission": gin.H{
			"id":               submission.ID,
			"student_name":     submission.Student.FullName,
			"assignment_title": submission.Assignment.Title,
			"grade":            grade,
			"max_grade":        submission.Assignment.MaxGrade,
			"feedback":         input.Feedback,
			"status":           models.SubmissionGraded,
		},
	})
}

// clampGrade limita la nota al máximo de la tarea.
func clampGrade(grade, maxGrade float64) float64 {
	if grade > maxGrade {
		return maxGrade
	}
	if grade < 0 {
		return 0
	}
	return grade
}
