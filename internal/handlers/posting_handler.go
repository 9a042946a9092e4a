package handlers

import (
	"net/http"

	"farmwork_backend/internal/services"
	"farmwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PostingHandler serves the public read surface: listing queries, landing
// pages, draft submission and detail lookups.
type PostingHandler struct {
	*BaseHandler
	postingService services.PostingService
	listingService services.ListingService
}

func NewPostingHandler(base *BaseHandler, postingService services.PostingService, listingService services.ListingService) *PostingHandler {
	return &PostingHandler{
		BaseHandler:    base,
		postingService: postingService,
		listingService: listingService,
	}
}

func (h *PostingHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.ListPostings)
		jobs.POST("", h.CreateDraft)
		jobs.GET("/category/:category", h.ListByCategory)
		jobs.GET("/state/:state", h.ListByState)
		jobs.GET("/:slug", h.GetPosting)
	}
}

func (h *PostingHandler) ListPostings(c *gin.Context) {
	var req dto.ListPostingsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	result, err := h.listingService.ListPostings(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PostingHandler) ListByCategory(c *gin.Context) {
	result, err := h.listingService.ListByCategory(h.GetDB(c), c.Param("category"), c.Query("sort_by"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PostingHandler) ListByState(c *gin.Context) {
	result, err := h.listingService.ListByState(h.GetDB(c), c.Param("state"), c.Query("sort_by"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	detail, _, err := h.postingService.GetBySlug(h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateDraft accepts a submission and returns the posting with its edit
// token. The posting stays inactive until the payment webhook lands.
func (h *PostingHandler) CreateDraft(c *gin.Context) {
	var req dto.CreatePostingRequest
	if !h.Bind_JSON(c, &req) {
		return
	}

	result, err := h.postingService.CreateDraft(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
