package handlers

import (
	"net/http"

	"farmwork_backend/internal/services"
	"farmwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ManageHandler serves the owner surface. The edit token in the path is the
// sole credential; there are no accounts.
type ManageHandler struct {
	*BaseHandler
	postingService services.PostingService
}

func NewManageHandler(base *BaseHandler, postingService services.PostingService) *ManageHandler {
	return &ManageHandler{
		BaseHandler:    base,
		postingService: postingService,
	}
}

func (h *ManageHandler) RegisterRoutes(r *gin.RouterGroup) {
	manage := r.Group("/manage")
	{
		manage.GET("/:token", h.GetPosting)
		manage.PUT("/:token", h.UpdatePosting)
		manage.POST("/:token/deactivate", h.Deactivate)
		manage.POST("/:token/reactivate", h.Reactivate)
	}
}

func (h *ManageHandler) GetPosting(c *gin.Context) {
	posting, err := h.postingService.LookupByToken(h.GetDB(c), c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *ManageHandler) UpdatePosting(c *gin.Context) {
	var req dto.UpdatePostingRequest
	if !h.Bind_JSON(c, &req) {
		return
	}

	posting, err := h.postingService.Update(h.GetDB(c), c.Param("token"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *ManageHandler) Deactivate(c *gin.Context) {
	posting, err := h.postingService.Deactivate(h.GetDB(c), c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *ManageHandler) Reactivate(c *gin.Context) {
	posting, err := h.postingService.Reactivate(h.GetDB(c), c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}
