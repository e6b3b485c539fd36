package controllers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/escueladux/escuela-dux-backend/models"
)

func TestApproveEnrollment(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	admin := createUser(t, db, "Admin DUX", "admin@test.com", "secreto1", models.RoleAdmin, true)
	student := createUser(t, db, "Ana Ruiz", "ana@test.com", "secreto1", models.RoleStudent, true)
	course := createCourse(t, db, "Inglés A1", nil, true)
	enr := createEnrollment(t, db, student.ID, course.ID, models.EnrollmentPending)

	t.Run("aprobar escribe approved_at y approved_by", func(t *testing.T) {
		rec := doJSON(r, "POST", "/api/admin/approve_enrollment", map[string]interface{}{
			"enrollment_id": enr.ID,
			"status":        "approved",
			"admin_id":      admin.ID,
			"notes":         "Pago verificado",
		})
		body := assertEnvelope(t, rec, http.StatusOK, true)
		assert.Equal(t, "Inscripción aprobada exitosamente", body["message"])

		var stored models.Enrollment
		db.First(&stored, enr.ID)
		assert.Equal(t, models.EnrollmentApproved, stored.Status)
		assert.NotNil(t, stored.ApprovedAt)
		assert.NotNil(t, stored.ApprovedBy)
		assert.Equal(t, admin.ID, *stored.ApprovedBy)
		assert.NotNil(t, stored.Notes)
		assert.Equal(t, "Pago verificado", *stored.Notes)
	})

	t.Run("rechazar no escribe approved_at", func(t *testing.T) {
		enr2 := createEnrollment(t, db, student.ID, course.ID, models.EnrollmentPending)
		rec := doJSON(r, "POST", "/api/admin/approve_enrollment", map[string]interface{}{
			"enrollment_id": enr2.ID,
			"status":        "rejected",
			"admin_id":      admin.ID,
		})
		body := assertEnvelope(t, rec, http.StatusOK, true)
		assert.Equal(t, "Inscripción rechazada", body["message"])

		var stored models.Enrollment
		db.First(&stored, enr2.ID)
		assert.Equal(t, models.EnrollmentRejected, stored.Status)
		assert.Nil(t, stored.ApprovedAt)
		assert.Nil(t, stored.ApprovedBy)
	})

	t.Run("repetir la decisión sobreescribe", func(t *testing.T) {
		rec := doJSON(r, "POST", "/api/admin/approve_enrollment", map[string]interface{}{
			"enrollment_id": enr.ID,
			"status":        "cancelled",
			"admin_id":      admin.ID,
		})
		assertEnvelope(t, rec, http.StatusOK, true)

		var stored models.Enrollment
		db.First(&stored, enr.ID)
		assert.Equal(t, models.EnrollmentCancelled, stored.Status)
	})

	t.Run("status inválido", func(t *testing.T) {
		rec := doJSON(r, "POST", "/api/admin/approve_enrollment", map[string]interface{}{
			"enrollment_id": enr.ID,
			"status":        "maybe",
		})
		body := assertEnvelope(t, rec, http.StatusBadRequest, false)
		assert.Equal(t, "Status inválido. Use: pending, approved, rejected, cancelled", body["error"])
	})

	t.Run("inscripción inexistente", func(t *testing.T) {
		rec := doJSON(r, "POST", "/api/admin/approve_enrollment", map[string]interface{}{
			"enrollment_id": 9999,
			"status":        "approved",
		})
		body := assertEnvelope(t, rec, http.StatusNotFound, false)
		assert.Equal(t, "Inscripción no encontrada", body["error"])
	})
}

func TestGetEnrollments(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	ana := createUser(t, db, "Ana Ruiz", "ana@test.com", "secreto1", models.RoleStudent, true)
	luis := createUser(t, db, "Luis Gómez", "luis@test.com", "secreto1", models.RoleStudent, true)
	ingles := createCourse(t, db, "Inglés A1", nil, true)
	frances := createCourse(t, db, "Francés B1", nil, true)

	createEnrollment(t, db, ana.ID, ingles.ID, models.EnrollmentPending)
	createEnrollment(t, db, ana.ID, frances.ID, models.EnrollmentApproved)
	createEnrollment(t, db, luis.ID, ingles.ID, models.EnrollmentApproved)

	t.Run("sin filtros devuelve todas", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_enrollments", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["enrollments"], 3)

		pagination := data["pagination"].(map[string]interface{})
		assert.Equal(t, float64(3), pagination["total"])
		assert.Equal(t, float64(20), pagination["per_page"])
	})

	t.Run("filtro por status", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_enrollments?status=pending", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		list := data["enrollments"].([]interface{})
		assert.Len(t, list, 1)
		first := list[0].(map[string]interface{})
		assert.Equal(t, "pending", first["status"])
	})

	t.Run("filtro por curso", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_enrollments?course_id="+itoa(ingles.ID), nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["enrollments"], 2)
	})

	t.Run("status desconocido se ignora", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_enrollments?status=bogus", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["enrollments"], 3)
	})
}

func TestGetUsers(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	createUser(t, db, "Admin DUX", "admin@test.com", "secreto1", models.RoleAdmin, true)
	createUser(t, db, "Prof. Díaz", "diaz@test.com", "secreto1", models.RoleTeacher, true)
	createUser(t, db, "Ana Ruiz", "ana@test.com", "secreto1", models.RoleStudent, true)
	createUser(t, db, "Luis Gómez", "luis@test.com", "secreto1", models.RoleStudent, true)

	t.Run("filtro por rol", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users?role=student", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		users := data["users"].([]interface{})
		assert.Len(t, users, 2)
		for _, u := range users {
			role := u.(map[string]interface{})["role"].(map[string]interface{})
			assert.Equal(t, "student", role["name"])
		}
	})

	t.Run("rol desconocido se ignora", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users?role=superuser", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["users"], 4)
	})

	t.Run("búsqueda por nombre o email sin distinguir mayúsculas", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users?search=ANA", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		users := data["users"].([]interface{})
		assert.Len(t, users, 1)
		assert.Equal(t, "Ana Ruiz", users[0].(map[string]interface{})["full_name"])
	})

	t.Run("búsqueda por fragmento de email", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users?search=diaz@", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["users"], 1)
	})

	t.Run("búsqueda sin resultados", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users?search=zzz", nil)
		body := assertEnvelope(t, rec, http.StatusOK, true)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["users"], 0)
	})

	t.Run("el hash de contraseña no se expone", func(t *testing.T) {
		rec := doJSON(r, "GET", "/api/admin/get_users", nil)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestExportEnrollments(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	ana := createUser(t, db, "Ana Ruiz", "ana@test.com", "secreto1", models.RoleStudent, true)
	course := createCourse(t, db, "Inglés A1", nil, true)
	createEnrollment(t, db, ana.ID, course.ID, models.EnrollmentApproved)

	rec := doJSON(r, "GET", "/api/admin/export_enrollments", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inscripciones_")
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	// Un .xlsx es un zip: empieza con PK
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	teacher := createUser(t, db, "Prof. Díaz", "diaz@test.com", "secreto1", models.RoleTeacher, true)
	ana := createUser(t, db, "Ana Ruiz", "ana@test.com", "secreto1", models.RoleStudent, true)
	luis := createUser(t, db, "Luis Gómez", "luis@test.com", "secreto1", models.RoleStudent, true)
	course := createCourse(t, db, "Inglés A1", &teacher.ID, true)

	// Una aprobada este mes con pago, otra pendiente
	now := time.Now()
	amount := 150000.0
	approved := models.Enrollment{
		UserID:     ana.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentApproved,
		AmountPaid: &amount,
		ApprovedAt: &now,
	}
	if err := db.Create(&approved).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	createEnrollment(t, db, luis.ID, course.ID, models.EnrollmentPending)

	rec := doJSON(r, "GET", "/api/admin/get_stats", nil)
	body := assertEnvelope(t, rec, http.StatusOK, true)
	data := body["data"].(map[string]interface{})

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_students"])
	assert.Equal(t, float64(1), stats["total_teachers"])
	assert.Equal(t, float64(1), stats["total_courses"])
	assert.Equal(t, float64(1), stats["pending_enrollments"])
	assert.Equal(t, float64(2), stats["monthly_enrollments"])
	assert.Equal(t, 150000.0, stats["monthly_revenue"])

	recent := data["recent_activity"].([]interface{})
	assert.Len(t, recent, 2)

	popular := data["popular_courses"].([]interface{})
	assert.Len(t, popular, 1)
	top := popular[0].(map[string]interface{})
	assert.Equal(t, "Inglés A1", top["title"])
	assert.Equal(t, float64(1), top["enrollments"])
}
