// Package payments builds provider checkout links for court reservations.
// Reservation IDs travel through the provider as metadata together with an
// HMAC signature, so the confirmation callback can prove the ID was ours.
package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rondo-club/rondo-api/internal/config"
)

type CreatePaymentInput struct {
	Amount        float64
	ReservationID uint
	ReturnURL     string
	Description   string
}

// LinkCreator is what handlers depend on; tests swap in a stub.
type LinkCreator interface {
	CreatePaymentLink(ctx context.Context, input CreatePaymentInput) (string, error)
}

type Client struct {
	httpClient *http.Client
	apiURL     string
	shopID     string
	shopKey    string
	secretKey  string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     cfg.PaymentAPIURL,
		shopID:     cfg.PaymentShopID,
		shopKey:    cfg.PaymentShopKey,
		secretKey:  cfg.PaymentSecretKey,
	}
}

// CreatePaymentLink registers a payment with the provider and returns the
// URL the user is redirected to. The reservation ID doubles as the
// idempotence key, so retrying a failed call cannot double-charge.
func (c *Client) CreatePaymentLink(ctx context.Context, input CreatePaymentInput) (string, error) {
	payload := map[string]any{
		"amount": map[string]string{
			"value":    fmt.Sprintf("%.2f", input.Amount),
			"currency": "RUB",
		},
		"payment_method_data": map[string]string{"type": "bank_card"},
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": input.ReturnURL,
		},
		"capture":     true,
		"description": input.Description,
		"metadata": map[string]string{
			"rental_id":        strconv.FormatUint(uint64(input.ReservationID), 10),
			"rental_signature": Sign(input.ReservationID, c.secretKey),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", strconv.FormatUint(uint64(input.ReservationID), 10))
	req.SetBasicAuth(c.shopID, c.shopKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("payment provider returned %s", resp.Status)
	}

	var result struct {
		Confirmation struct {
			ConfirmationURL string `json:"confirmation_url"`
		} `json:"confirmation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode payment response: %w", err)
	}
	if result.Confirmation.ConfirmationURL == "" {
		return "", fmt.Errorf("payment response missing confirmation url")
	}

	return result.Confirmation.ConfirmationURL, nil
}

// Sign produces the hex HMAC-SHA256 of a reservation ID.
func Sign(reservationID uint, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatUint(uint64(reservationID), 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature in constant time.
func Verify(reservationID uint, signature, secret string) bool {
	expected := Sign(reservationID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
