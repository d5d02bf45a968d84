package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrBillingNotConfigured is returned by every call on the disabled
// client. It is non-retryable: the deployment is missing its Stripe
// secret key.
var ErrBillingNotConfigured = errors.New("billing is not configured: STRIPE_SECRET_KEY is missing")

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type PortalSession struct {
	URL string `json:"url"`
}

// BillingService creates Stripe-hosted checkout and billing-portal
// sessions. Calls are single attempt; errors surface to the caller for
// user-visible messaging, never retried here.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, priceID string, userID int64) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID string) (*PortalSession, error)
}

const stripeAPIBase = "https://api.stripe.com"

type StripeBillingService struct {
	baseURL    string
	secretKey  string
	appURL     string
	httpClient *http.Client
}

func NewStripeBillingService(secretKey, appURL string) *StripeBillingService {
	return &StripeBillingService{
		baseURL:    stripeAPIBase,
		secretKey:  secretKey,
		appURL:     strings.TrimRight(appURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (s *StripeBillingService) CreateCheckoutSession(ctx context.Context, priceID string, userID int64) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", s.appURL+"?success=true")
	form.Set("cancel_url", s.appURL+"?canceled=true")
	form.Set("metadata[userId]", strconv.FormatInt(userID, 10))

	var response struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := s.post(ctx, "/v1/checkout/sessions", form, &response); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if response.ID == "" {
		return nil, fmt.Errorf("create checkout session: session id missing from response")
	}

	return &CheckoutSession{SessionID: response.ID, URL: response.URL}, nil
}

func (s *StripeBillingService) CreatePortalSession(ctx context.Context, customerID string) (*PortalSession, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", s.appURL)

	var response struct {
		URL string `json:"url"`
	}
	if err := s.post(ctx, "/v1/billing_portal/sessions", form, &response); err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	if response.URL == "" {
		return nil, fmt.Errorf("create portal session: url missing from response")
	}

	return &PortalSession{URL: response.URL}, nil
}

func (s *StripeBillingService) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, stripeErrorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func stripeErrorMessage(body io.Reader) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(body, 2048))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

// DisabledBillingService stands in when no Stripe key is configured.
// The variant is chosen once at startup, never per call.
type DisabledBillingService struct{}

func NewDisabledBillingService() *DisabledBillingService {
	return &DisabledBillingService{}
}

func (s *DisabledBillingService) CreateCheckoutSession(context.Context, string, int64) (*CheckoutSession, error) {
	return nil, ErrBillingNotConfigured
}

func (s *DisabledBillingService) CreatePortalSession(context.Context, string) (*PortalSession, error) {
	return nil, ErrBillingNotConfigured
}
