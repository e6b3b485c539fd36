package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escueladux/escuela-dux-backend/utils"
)

// RequireRoles permite indicar varios roles autorizados para un grupo de rutas.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Autenticar primero
		AuthMiddleware()(c)
		if c.IsAborted() {
			return
		}

		roleValue, exists := c.Get("role")
		if !exists {
			utils.AbortError(c, http.StatusUnauthorized, "No se pudo determinar el rol del usuario")
			return
		}
		role, ok := roleValue.(string)
		if !ok {
			utils.AbortError(c, http.StatusInternalServerError, "Error al procesar el rol del usuario")
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.AbortError(c, http.StatusForbidden, "No tienes permisos para acceder a este recurso")
	}
}
