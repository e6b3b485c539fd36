package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/escueladux/escuela-dux-backend/config"
	"github.com/escueladux/escuela-dux-backend/controllers"
	"github.com/escueladux/escuela-dux-backend/routes"
	"github.com/escueladux/escuela-dux-backend/services"
)

func main() {
	// Cargar .env
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró el archivo .env")
	}

	config.InitDB()

	controllers.Store = services.StorageFromEnv()

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB)

	// Archivos subidos en modo local
	if os.Getenv("STORAGE_DRIVER") != "supabase" {
		uploadsDir := os.Getenv("UPLOADS_DIR")
		if uploadsDir == "" {
			uploadsDir = "uploads"
		}
		r.Static("/uploads", uploadsDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Escuela DUX server is running")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
