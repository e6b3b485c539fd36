package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DBMiddleware inyecta la conexión en el contexto; los controllers la
// recuperan con c.MustGet("db"), lo que permite apuntarlos a otra base
// en las pruebas.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}
