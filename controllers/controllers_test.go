package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/escueladux/escuela-dux-backend/config"
	"github.com/escueladux/escuela-dux-backend/middleware"
	"github.com/escueladux/escuela-dux-backend/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("setupTestDB() failed: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.DBMiddleware(db))

	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/register", Register)
	r.GET("/api/courses/get_all", GetAllCourses)
	r.GET("/api/student/dashboard_data", StudentDashboard)
	r.POST("/api/student/upload_submission", UploadSubmission)
	r.GET("/api/teacher/dashboard_data", TeacherDashboard)
	r.POST("/api/teacher/create_assignment", CreateAssignment)
	r.POST("/api/teacher/grade_submission", GradeSubmission)
	r.GET("/api/admin/get_stats", GetStats)
	r.GET("/api/admin/get_users", GetUsers)
	r.GET("/api/admin/get_enrollments", GetEnrollments)
	r.POST("/api/admin/approve_enrollment", ApproveEnrollment)
	r.GET("/api/admin/export_enrollments", ExportEnrollments)
	return r
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
	}
	return body
}

func createUser(t *testing.T, db *gorm.DB, name, email, password string, role models.UserRole, isActive bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	usr := models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&usr).Error; err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	// El default de is_active es true; desactivar requiere un update explícito
	if !isActive {
		db.Model(&usr).Update("is_active", false)
		usr.IsActive = false
	} else {
		usr.IsActive = true
	}
	return usr
}

func createCourse(t *testing.T, db *gorm.DB, title string, teacherID *uint, isActive bool) models.Course {
	t.Helper()
	course := models.Course{
		Title:     title,
		Modality:  models.ModalityOnline,
		TeacherID: teacherID,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	if !isActive {
		db.Model(&course).Update("is_active", false)
		course.IsActive = false
	} else {
		course.IsActive = true
	}
	return course
}

func createEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, status models.EnrollmentStatus) models.Enrollment {
	t.Helper()
	enr := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   status,
	}
	if err := db.Create(&enr).Error; err != nil {
		t.Fatalf("createEnrollment() failed: %v", err)
	}
	return enr
}

func createAssignment(t *testing.T, db *gorm.DB, courseID, createdBy uint, title string, maxGrade float64, dueDate *time.Time) models.Assignment {
	t.Helper()
	a := models.Assignment{
		CourseID:  courseID,
		Title:     title,
		DueDate:   dueDate,
		MaxGrade:  maxGrade,
		CreatedBy: createdBy,
		IsActive:  true,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return a
}

func createSubmission(t *testing.T, db *gorm.DB, assignmentID, studentID uint) models.Submission {
	t.Helper()
	sub := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileURL:      "/uploads/submissions/test.pdf",
		Status:       models.SubmissionSubmitted,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("createSubmission() failed: %v", err)
	}
	return sub
}

func assertEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantSuccess bool) map[string]interface{} {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, wantStatus, rec.Body.String())
	}
	body := parseBody(t, rec)
	if body["success"] != wantSuccess {
		t.Fatalf("success = %v, want %v\n%s", body["success"], wantSuccess, rec.Body.String())
	}
	return body
}
