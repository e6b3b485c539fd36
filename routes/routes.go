package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/escueladux/escuela-dux-backend/controllers"
	"github.com/escueladux/escuela-dux-backend/middleware"
	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.Use(middleware.DBMiddleware(db))

	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/register", controllers.Register)
	}

	courses := api.Group("/courses")
	{
		courses.GET("/get_all", controllers.GetAllCourses)
	}

	student := api.Group("/student")
	{
		student.Use(middleware.RequireRoles(string(models.RoleStudent)))
		student.GET("/dashboard_data", controllers.StudentDashboard)
		student.POST("/upload_submission", controllers.UploadSubmission)
	}

	teacher := api.Group("/teacher")
	{
		teacher.Use(middleware.RequireRoles(string(models.RoleTeacher)))
		teacher.GET("/dashboard_data", controllers.TeacherDashboard)
		teacher.POST("/create_assignment", controllers.CreateAssignment)
		teacher.POST("/grade_submission", controllers.GradeSubmission)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.RequireRoles(string(models.RoleAdmin)))
		admin.GET("/get_stats", controllers.GetStats)
		admin.GET("/get_users", controllers.GetUsers)
		admin.GET("/get_enrollments", controllers.GetEnrollments)
		admin.POST("/approve_enrollment", controllers.ApproveEnrollment)
		admin.GET("/export_enrollments", controllers.ExportEnrollments)
	}

	r.GET("/ws/admin", ws.HandleAdminWebSocket)

	return r
}
