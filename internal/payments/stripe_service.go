package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"farmwork_backend/internal/models"
	"farmwork_backend/internal/services/dto"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// webhookTolerance bounds how old a signed webhook timestamp may be.
const webhookTolerance = 5 * time.Minute

// StripeService talks to Stripe's hosted checkout. The core never handles
// card data; it creates a session, redirects, and waits for the completed
// webhook.
type StripeService struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	StandardPrice int64 // cents
	FeaturedPrice int64 // cents
	HTTPClient    *http.Client
}

type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	StandardPrice int64
	FeaturedPrice int64
}

func NewStripeService(cfg Config) *StripeService {
	return &StripeService{
		SecretKey:     cfg.SecretKey,
		WebhookSecret: cfg.WebhookSecret,
		Currency:      cfg.Currency,
		StandardPrice: cfg.StandardPrice,
		FeaturedPrice: cfg.FeaturedPrice,
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Session is the subset of the checkout session object the core cares about.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession registers a hosted checkout for the posting and
// returns the redirect URL. The posting ID and plan travel as opaque
// metadata and come back on the completed event.
func (s *StripeService) CreateCheckoutSession(postingID string, plan models.Plan, description, successURL, cancelURL string) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", s.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(s.priceFor(plan), 10))
	form.Set("line_items[0][price_data][product_data][name]", description)
	form.Set("metadata[posting_id]", postingID)
	form.Set("metadata[plan]", string(plan))

	req, err := http.NewRequest(http.MethodPost, stripeAPIBase+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout session request returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return &session, nil
}

// VerifyWebhookSignature validates a Stripe-Signature header value against
// the raw payload: HMAC-SHA256 over "<timestamp>.<payload>" with the webhook
// secret, compared in constant time, timestamp within tolerance.
func (s *StripeService) VerifyWebhookSignature(payload []byte, sigHeader string, now time.Time) bool {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return true
		}
	}
	return false
}

// webhookEvent mirrors the fields of the provider event envelope the core
// reads.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			PaymentIntent string            `json:"payment_intent"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseCompletedEvent extracts the payment-completed event from a verified
// webhook payload. Returns nil for event types the core ignores.
func (s *StripeService) ParseCompletedEvent(payload []byte) (*dto.PaymentCompletedEvent, error) {
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	postingID := event.Data.Object.Metadata["posting_id"]
	if postingID == "" {
		return nil, fmt.Errorf("webhook event missing posting_id metadata")
	}

	plan := event.Data.Object.Metadata["plan"]
	if plan == "" {
		plan = string(models.PlanStandard)
	}

	return &dto.PaymentCompletedEvent{
		PostingID:        postingID,
		Plan:             plan,
		PaymentReference: event.Data.Object.PaymentIntent,
	}, nil
}

func (s *StripeService) priceFor(plan models.Plan) int64 {
	if plan == models.PlanFeatured {
		return s.FeaturedPrice
	}
	return s.StandardPrice
}
