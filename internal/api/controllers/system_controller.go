package controllers

import (
	"github.com/gin-gonic/gin"
	"tripsmith/pkg/utils"
)

type SystemController struct{}

func NewSystemController() *SystemController {
	return &SystemController{}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /healthz [get]
func (s *SystemController) Healthz(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "Service is healthy")
}
