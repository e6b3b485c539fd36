package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination lee ?page y ?limit con los mismos topes que la API
// original: página >= 1, límite entre 10 y 100, 20 por defecto.
func ParsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 10 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

// PaginationMeta arma el bloque de paginación de las respuestas de listado.
func PaginationMeta(page, limit int, total int64) gin.H {
	return gin.H{
		"current_page": page,
		"per_page":     limit,
		"total":        total,
		"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
	}
}
