package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmwork_backend/internal/clock"
	"farmwork_backend/internal/email"
	"farmwork_backend/internal/middleware"
	"farmwork_backend/internal/models"
	"farmwork_backend/internal/payments"
	"farmwork_backend/internal/services"
	"farmwork_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	templates []string
	messages  []*email.Email
}

func (r *recordingProvider) Send(msg *email.Email) error { return nil }
func (r *recordingProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	r.templates = append(r.templates, templateName)
	r.messages = append(r.messages, msg)
	return nil
}
func (r *recordingProvider) Validate() error { return nil }
func (r *recordingProvider) Close() error    { return nil }

func newWebhookTestRouter(svc *stubPostingService, provider *recordingProvider, clk clock.Clock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	stripeSvc := payments.NewStripeService(payments.Config{
		SecretKey:     "sk_test",
		WebhookSecret: "whsec_test",
		Currency:      "usd",
		StandardPrice: 4900,
		FeaturedPrice: 9900,
	})
	emailSvc := services.NewEmailService(provider, "http://localhost:4000")

	handler := NewCheckoutHandler(NewBaseHandler(validator.New()), svc, emailSvc, stripeSvc, clk, "http://localhost:4000")
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

var webhookNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signWebhook(secret string, payload []byte, ts time.Time) string {
	timestamp := fmt.Sprintf("%d", ts.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	router := newWebhookTestRouter(&stubPostingService{}, &recordingProvider{}, &clock.Fixed{Time: webhookNow})

	payload := []byte(`{"type":"checkout.session.completed"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")
}

// A correctly signed event delivered outside the tolerance window must be
// rejected against the handler's clock, not the wall clock.
func TestWebhook_RejectsStaleSignature(t *testing.T) {
	router := newWebhookTestRouter(&stubPostingService{}, &recordingProvider{}, &clock.Fixed{Time: webhookNow})

	payload := []byte(`{"type":"checkout.session.completed"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook("whsec_test", payload, webhookNow.Add(-6*time.Minute)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")
}

func TestWebhook_CompletedEventActivatesAndEmails(t *testing.T) {
	provider := &recordingProvider{}
	svc := &stubPostingService{
		activated: &models.JobPosting{
			ID:           "post-1",
			Slug:         "ranch-hand-1756700000",
			Title:        "Ranch Hand",
			CompanyEmail: "jobs@bart.example",
			EditToken:    "edit-token-abc",
			Active:       true,
		},
	}
	router := newWebhookTestRouter(svc, provider, &clock.Fixed{Time: webhookNow})

	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"payment_intent": "pi_abc",
			"metadata": {"posting_id": "post-1", "plan": "standard"}
		}}
	}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook("whsec_test", payload, webhookNow))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, provider.templates, 1)
	assert.Equal(t, email.TemplateConfirmation, provider.templates[0])
	assert.Equal(t, []string{"jobs@bart.example"}, provider.messages[0].To)
}

func TestWebhook_IgnoresUnrelatedEvents(t *testing.T) {
	provider := &recordingProvider{}
	router := newWebhookTestRouter(&stubPostingService{}, provider, &clock.Fixed{Time: webhookNow})

	payload := []byte(`{"type":"invoice.paid"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook("whsec_test", payload, webhookNow))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, provider.templates)
}
