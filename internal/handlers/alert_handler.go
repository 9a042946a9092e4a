package handlers

import (
	"net/http"

	"farmwork_backend/internal/services"
	"farmwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	*BaseHandler
	alertService services.AlertService
}

func NewAlertHandler(base *BaseHandler, alertService services.AlertService) *AlertHandler {
	return &AlertHandler{BaseHandler: base, alertService: alertService}
}

func (h *AlertHandler) RegisterRoutes(r *gin.RouterGroup) {
	alerts := r.Group("/alerts")
	{
		alerts.POST("", h.Subscribe)
		alerts.GET("/unsubscribe/:token", h.Unsubscribe)
	}
}

func (h *AlertHandler) Subscribe(c *gin.Context) {
	var req dto.CreateAlertRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	alert, err := h.alertService.Subscribe(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, alert)
}

func (h *AlertHandler) Unsubscribe(c *gin.Context) {
	token := c.Param("token")

	if err := h.alertService.Unsubscribe(h.GetDB(c), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been unsubscribed"})
}
