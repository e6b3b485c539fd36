package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escueladux/escuela-dux-backend/config"
	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Falta el header Authorization")
			return
		}

		// Separar el token de "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortError(c, http.StatusUnauthorized, "Header Authorization inválido")
			return
		}

		claims, err := utils.VerifyToken(parts[1])
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Token inválido o expirado")
			return
		}

		// Verificar que la cuenta siga activa
		var user models.User
		if err := config.DB.Select("is_active").First(&user, "id = ?", claims.UserID).Error; err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Usuario no encontrado")
			return
		}
		if !user.IsActive {
			utils.AbortError(c, http.StatusForbidden, "Tu cuenta está desactivada. Contacta al administrador.")
			return
		}

		// Guardar identidad en el contexto para los controllers.
		// Sin c.Next(): RequireRoles invoca este middleware de forma anidada
		// y un Next aquí ejecutaría el handler antes del chequeo de rol.
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
	}
}
