package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RazorpayClient talks to the Razorpay orders API. One instance is built at
// startup and injected wherever a gateway is needed, so tests can swap in a
// fake.
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	httpc     *http.Client
}

func NewRazorpayClient(baseURL, keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		httpc:     &http.Client{Timeout: 15 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int               `json:"amount"` // paise
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder opens a payment order for the given rupee total. The receipt
// is the internal order id, which Razorpay treats as the idempotency handle
// for retried checkouts.
func (c *RazorpayClient) CreateOrder(totalRupees int, receipt string, notes map[string]string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   totalRupees * 100,
		Currency: "INR",
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("razorpay order create: status %d", res.StatusCode)
	}

	var out createOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("razorpay order create: empty order id")
	}
	return out.ID, nil
}
