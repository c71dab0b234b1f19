package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version выставляется при сборке через -ldflags
var Version = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes вешает служебные маршруты на корень, вне /api/v1
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "HireMind AI",
		"version": Version,
		"status":  "running",
		"docs":    "/swagger/index.html",
	})
}

// Health godoc
// @Summary Проверка работоспособности
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
