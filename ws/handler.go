package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/escueladux/escuela-dux-backend/models"
	"github.com/escueladux/escuela-dux-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // restringir en producción
	},
}

// GET /ws/admin?token=...
// Feed de refresco para los paneles de admin y profesor. El token va por
// query string porque los navegadores no permiten headers en WebSocket.
func HandleAdminWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.Error(c, http.StatusUnauthorized, "Falta el token")
		return
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Token inválido o expirado")
		return
	}
	if claims.Role != string(models.RoleAdmin) && claims.Role != string(models.RoleTeacher) {
		utils.Error(c, http.StatusForbidden, "No tienes permisos para acceder a este recurso")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Fallo el upgrade de WebSocket:", err)
		return
	}
	H.Register(conn)
}
