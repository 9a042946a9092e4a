package handlers

import (
	"fmt"
	"io"
	"net/http"

	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/logger"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/payments"
	"farmwork_backend/internal/services"
	"farmwork_backend/internal/services/dto"
	"farmwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler is the edge to the hosted payment provider: it creates
// checkout sessions and consumes the completed-payment webhook.
type CheckoutHandler struct {
	*BaseHandler
	postingService services.PostingService
	emailService   *services.EmailService
	stripeService  *payments.StripeService
	clock          clock.Clock
	baseURL        string
}

func NewCheckoutHandler(
	base *BaseHandler,
	postingService services.PostingService,
	emailService *services.EmailService,
	stripeService *payments.StripeService,
	clk clock.Clock,
	baseURL string,
) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:    base,
		postingService: postingService,
		emailService:   emailService,
		stripeService:  stripeService,
		clock:          clk,
		baseURL:        baseURL,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/session", h.CreateSession)
		checkout.POST("/webhook", h.Webhook)
	}
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CreateCheckoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	description := fmt.Sprintf("FarmWork job posting (%s plan)", req.Plan)
	successURL := h.baseURL + "/post/success"
	cancelURL := h.baseURL + "/post/cancelled"

	session, err := h.stripeService.CreateCheckoutSession(
		req.PostingID, models.Plan(req.Plan), description, successURL, cancelURL,
	)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrPaymentFailed(err))
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutSessionResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

// Webhook verifies the provider signature, activates the posting on a
// completed payment and hands the confirmation email off. Events the core
// does not care about are acknowledged and dropped.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read webhook body"))
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if !h.stripeService.VerifyWebhookSignature(payload, sigHeader, h.clock.Now()) {
		apperrors.HandleError(c, apperrors.ErrInvalidWebhookSignature)
		return
	}

	event, err := h.stripeService.ParseCompletedEvent(payload)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	if event == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	posting, err := h.postingService.Activate(
		h.GetDB(c), event.PostingID, models.Plan(event.Plan), event.PaymentReference,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "posting activated",
		"posting_id", posting.ID, "plan", event.Plan)

	// Confirmation email carries the only copy of the edit link.
	h.emailService.SendPostingConfirmation(posting, posting.EditToken)

	c.JSON(http.StatusOK, gin.H{"received": true})
}
