package controllers

import (
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/services"
	"github.com/escueladux/escuela-dux-backend/utils"
	"github.com/escueladux/escuela-dux-backend/ws"
)

// Store es el backend de archivos; main lo reemplaza según STORAGE_DRIVER.
var Store services.Storage = &services.LocalStorage{BaseDir: "uploads"}

const maxSubmissionSize = 10 * 1024 * 1024 // 10MB

// Tipos permitidos para entregas: PDF, DOC, DOCX, TXT, JPG, PNG.
// Se inspecciona el contenido del archivo, no la extensión.
var allowedSubmissionTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"image/jpeg",
	"image/png",
}

// GET /api/student/dashboard_data
// Agrega en una sola respuesta los cursos aprobados del alumno, sus tareas
// con estado de entrega, las clases grabadas y los materiales.
func StudentDashboard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	studentID, err := strconv.Atoi(c.Query("student_id"))
	if err != nil || studentID <= 0 {
		utils.Error(c, http.StatusBadRequest, "student_id es requerido")
		return
	}

	var student models.User
	if err := db.Where("id = ? AND role = ?", studentID, models.RoleStudent).First(&student).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Estudiante no encontrado")
		return
	}

	// Cursos con inscripción aprobada
	var enrollments []models.Enrollment
	if err := db.Preload("Course").Preload("Course.Teacher").
		Where("user_id = ? AND status = ?", studentID, models.EnrollmentApproved).
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener datos del dashboard")
		return
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	var assignments []models.Assignment
	var recordings []models.ClassRecording
	var materials []models.CourseMaterial
	submissionsByAssignment := map[uint]*models.Submission{}

	if len(courseIDs) > 0 {
		db.Preload("Course").
			Where("course_id IN ? AND is_active = ?", courseIDs, true).
			Order("due_date ASC").
			Find(&assignments)

		assignmentIDs := make([]uint, 0, len(assignments))
		for _, a := range assignments {
			assignmentIDs = append(assignmentIDs, a.ID)
		}
		if len(assignmentIDs) > 0 {
			var subs []models.Submission
			db.Where("assignment_id IN ? AND student_id = ?", assignmentIDs, studentID).Find(&subs)
			for i := range subs {
				submissionsByAssignment[subs[i].AssignmentID] = &subs[i]
			}
		}

		db.Preload("Course").
			Where("course_id IN ? AND is_active = ?", courseIDs, true).
			Order("class_number ASC").
			Find(&recordings)

		db.Preload("Course").
			Where("course_id IN ? AND is_active = ?", courseIDs, true).
			Order("created_at DESC").
			Find(&materials)
	}

	// Estadísticas
	today := startOfDay(time.Now())
	pending := 0
	grades := []float64{}
	for _, a := range assignments {
		sub := submissionsByAssignment[a.ID]
		if isPendingAssignment(&a, sub, today) {
			pending++
		}
		if sub != nil && sub.Grade != nil {
			grades = append(grades, *sub.Grade)
		}
	}

	courseList := make([]gin.H, 0, len(enrollments))
	for _, e := range enrollments {
		course := e.Course
		var teacher gin.H
		if course.Teacher != nil {
			teacher = gin.H{"id": course.Teacher.ID, "name": course.Teacher.FullName}
		}
		courseList = append(courseList, gin.H{
			"id":            course.ID,
			"title":         course.Title,
			"description":   course.Description,
			"schedule":      course.Schedule(),
			"total_classes": course.TotalClasses,
			"total_hours":   course.TotalHours,
			"modality":      course.Modality,
			"image_url":     course.ImageURL,
			"teacher":       teacher,
			"enrolled_at":   e.CreatedAt,
		})
	}

	assignmentList := make([]gin.H, 0, len(assignments))
	for _, a := range assignments {
		var submission gin.H
		if sub := submissionsByAssignment[a.ID]; sub != nil {
			submission = gin.H{"id": sub.ID, "status": sub.Status, "grade": sub.Grade}
		}
		assignmentList = append(assignmentList, gin.H{
			"id":           a.ID,
			"course_id":    a.CourseID,
			"course_title": a.Course.Title,
			"title":        a.Title,
			"description":  a.Description,
			"due_date":     formatDueDate(a.DueDate),
			"max_grade":    a.MaxGrade,
			"submission":   submission,
		})
	}

	recordingList := make([]gin.H, 0, len(recordings))
	for _, r := range recordings {
		recordingList = append(recordingList, gin.H{
			"id":               r.ID,
			"course_id":        r.CourseID,
			"course_title":     r.Course.Title,
			"title":            r.Title,
			"description":      r.Description,
			"video_url":        r.VideoURL,
			"duration_minutes": r.DurationMinutes,
			"class_number":     r.ClassNumber,
		})
	}

	materialList := make([]gin.H, 0, len(materials))
	for _, m := range materials {
		materialList = append(materialList, gin.H{
			"id":           m.ID,
			"course_id":    m.CourseID,
			"course_title": m.Course.Title,
			"title":        m.Title,
			"description":  m.Description,
			"file_url":     m.FileURL,
			"file_type":    m.FileType,
		})
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"student": gin.H{
			"id":    student.ID,
			"name":  student.FullName,
			"email": student.Email,
		},
		"stats": gin.H{
			"enrolled_courses":      len(enrollments),
			"pending_assignments":   pending,
			"completed_assignments": len(grades),
			"average_grade":         averageGrade(grades),
		},
		"courses":     courseList,
		"assignments": assignmentList,
		"recordings":  recordingList,
		"materials":   materialList,
	})
}

// POST /api/student/upload_submission
// Entrega de tarea (multipart). Si ya existe una entrega para la pareja
// (tarea, alumno) se actualiza en lugar de crear otra; en ese caso el
// archivo es opcional.
func UploadSubmission(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	assignmentID, err1 := strconv.Atoi(c.PostForm("assignment_id"))
	studentID, err2 := strconv.Atoi(c.PostForm("student_id"))
	if err1 != nil || err2 != nil || assignmentID <= 0 || studentID <= 0 {
		utils.Error(c, http.StatusBadRequest, "assignment_id y student_id son requeridos")
		return
	}
	comments := optionalString(c.PostForm("comments"))

	var assignment models.Assignment
	if err := db.Preload("Course").
		Where("id = ? AND is_active = ?", assignmentID, true).
		First(&assignment).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Tarea no encontrada")
		return
	}

	// El alumno debe tener la inscripción aprobada en el curso de la tarea
	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		studentID, assignment.CourseID, models.EnrollmentApproved).
		First(&enrollment).Error; err != nil {
		utils.Error(c, http.StatusForbidden, "No estás inscrito en este curso")
		return
	}

	var existing models.Submission
	hasExisting := db.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&existing).Error == nil

	fileURL := ""
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxSubmissionSize {
			utils.Error(c, http.StatusBadRequest, "El archivo excede el tamaño máximo de 10MB")
			return
		}

		src, err := file.Open()
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al guardar el archivo")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al guardar el archivo")
			return
		}

		// Validar tipo por contenido, no por extensión
		detected := mimetype.Detect(data)
		if !isAllowedSubmissionType(detected) {
			utils.Error(c, http.StatusBadRequest, "Tipo de archivo no permitido. Use PDF, DOC, DOCX, TXT, JPG o PNG")
			return
		}

		name := services.SubmissionFileName(uint(studentID), uint(assignmentID), filepath.Ext(file.Filename))
		fileURL, err = Store.Save(data, "submissions", name, detected.String())
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al guardar el archivo")
			return
		}
	}

	if fileURL == "" && !hasExisting {
		utils.Error(c, http.StatusBadRequest, "Debes subir un archivo")
		return
	}

	var submission models.Submission
	message := ""
	if hasExisting {
		updates := map[string]interface{}{
			"comments":     comments,
			"status":       models.SubmissionSubmitted,
			"submitted_at": time.Now(),
		}
		if fileURL != "" {
			updates["file_url"] = fileURL
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al procesar la entrega")
			return
		}
		db.First(&submission, existing.ID)
		message = "Tarea actualizada exitosamente"
	} else {
		submission = models.Submission{
			AssignmentID: uint(assignmentID),
			StudentID:    uint(studentID),
			FileURL:      fileURL,
			Comments:     comments,
			Status:       models.SubmissionSubmitted,
		}
		if err := db.Create(&submission).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Error al procesar la entrega")
			return
		}
		message = "Tarea enviada exitosamente"
	}

	ws.BroadcastSubmissionsChanged()

	utils.Success(c, http.StatusOK, message, gin.H{
		"submission": gin.H{
			"id":               submission.ID,
			"assignment_id":    submission.AssignmentID,
			"assignment_title": assignment.Title,
			"course_title":     assignment.Course.Title,
			"file_url":         submission.FileURL,
			"comments":         submission.Comments,
			"status":           submission.Status,
			"submitted_at":     submission.SubmittedAt,
		},
	})
}

// startOfDay: medianoche en la zona local. Truncate opera sobre el
// instante UTC y en Bogotá marcaba como vencidas tareas que vencen hoy.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isPendingAssignment: una tarea está pendiente si el alumno no tiene
// entrega y además no venció (sin fecha límite, o fecha límite >= hoy).
func isPendingAssignment(a *models.Assignment, sub *models.Submission, today time.Time) bool {
	if sub != nil {
		return false
	}
	if a.DueDate == nil {
		return true
	}
	return !a.DueDate.Before(today)
}

// averageGrade: promedio con 2 decimales; 0 si no hay calificaciones.
func averageGrade(grades []float64) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range grades {
		sum += g
	}
	return math.Round(sum/float64(len(grades))*100) / 100
}

func isAllowedSubmissionType(detected *mimetype.MIME) bool {
	for _, allowed := range allowedSubmissionTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

func formatDueDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
