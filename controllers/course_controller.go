package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
)

// GET /api/courses/get_all
// Catálogo público de cursos. Por defecto solo los activos; ?include_inactive
// los incluye todos y ?modality filtra por modalidad.
func GetAllCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Course{}).Preload("Teacher")

	if _, includeInactive := c.GetQuery("include_inactive"); !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if modality := c.Query("modality"); modality != "" && models.ValidModality(modality) {
		query = query.Where("modality = ?", modality)
	}

	var courses []models.Course
	if err := query.Order("title").Find(&courses).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Error al obtener cursos")
		return
	}

	formatted := make([]gin.H, 0, len(courses))
	for i := range courses {
		formatted = append(formatted, formatCourse(&courses[i]))
	}

	utils.Success(c, http.StatusOK, "OK", gin.H{
		"courses": formatted,
		"total":   len(formatted),
	})
}

// formatCourse arma el payload público de un curso con horario y precios
// anidados, igual que la API original.
func formatCourse(course *models.Course) gin.H {
	var teacher gin.H
	if course.Teacher != nil {
		teacher = gin.H{"id": course.Teacher.ID, "name": course.Teacher.FullName}
	}
	return gin.H{
		"id":            course.ID,
		"title":         course.Title,
		"slug":          course.Slug,
		"description":   course.Description,
		"schedule":      course.Schedule(),
		"total_classes": course.TotalClasses,
		"total_hours":   course.TotalHours,
		"price":         course.Price(),
		"image_url":     course.ImageURL,
		"modality":      course.Modality,
		"is_active":     course.IsActive,
		"teacher":       teacher,
	}
}
