package utils

import (
	"github.com/gin-gonic/gin"
)

// Respuestas con el sobre uniforme de la API:
//   éxito: {success: true, message, data}
//   error: {success: false, error}

func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// AbortError corta la cadena de middlewares con el mismo sobre de error.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
