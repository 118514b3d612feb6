package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"khadamati-server/config"
)

// PayPalService talks to the PayPal Orders v2 REST API
type PayPalService struct {
	client *http.Client

	apiBase      string
	clientID     string
	clientSecret string
	currency     string
}

// PayPalOrder is the subset of the order payload we act on
type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// Raw holds the full processor response for the transaction record
	Raw json.RawMessage `json:"-"`
}

// CaptureResult carries payer details extracted from a capture response
type CaptureResult struct {
	Order      *PayPalOrder
	PayerID    string
	PayerEmail string
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// NewPayPalService creates a PayPal client from the loaded config
func NewPayPalService() *PayPalService {
	cfg := config.AppConfig.PayPal
	return &PayPalService{
		client:       &http.Client{Timeout: 30 * time.Second},
		apiBase:      cfg.APIBaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		currency:     cfg.Currency,
	}
}

// NewPayPalServiceWithBase creates a client against an explicit API base
func NewPayPalServiceWithBase(apiBase, clientID, clientSecret, currency string) *PayPalService {
	return &PayPalService{
		client:       &http.Client{Timeout: 30 * time.Second},
		apiBase:      apiBase,
		clientID:     clientID,
		clientSecret: clientSecret,
		currency:     currency,
	}
}

func (ps *PayPalService) getAccessToken() (string, error) {
	reqBody := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/oauth2/token", ps.apiBase), reqBody)
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(ps.clientID, ps.clientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ps.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token, status: %s", resp.Status)
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	return tokenResp.AccessToken, nil
}

// CreateOrder creates a PayPal order with intent CAPTURE for the given amount.
// The PayPal-Request-Id header makes retries idempotent on PayPal's side.
func (ps *PayPalService) CreateOrder(amount float64, referenceID string) (*PayPalOrder, error) {
	accessToken, err := ps.getAccessToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"reference_id": referenceID,
				"amount": map[string]string{
					"currency_code": ps.currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v2/checkout/orders", ps.apiBase), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("PayPal-Request-Id", uuid.New().String())

	resp, err := ps.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to create order: %s", string(respBody))
	}

	var order PayPalOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, err
	}
	order.Raw = respBody

	log.Printf("✅ PayPal order created: %s", order.ID)
	return &order, nil
}

// CaptureOrder captures an approved PayPal order and extracts payer details
func (ps *PayPalService) CaptureOrder(orderID string) (*CaptureResult, error) {
	accessToken, err := ps.getAccessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v2/checkout/orders/%s/capture", ps.apiBase, orderID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := ps.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to capture order: %s", string(respBody))
	}

	var captured struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Payer  struct {
			PayerID      string `json:"payer_id"`
			EmailAddress string `json:"email_address"`
		} `json:"payer"`
	}
	if err := json.Unmarshal(respBody, &captured); err != nil {
		return nil, err
	}

	order := &PayPalOrder{ID: captured.ID, Status: captured.Status, Raw: respBody}

	log.Printf("✅ PayPal order captured: %s (%s)", order.ID, order.Status)
	return &CaptureResult{
		Order:      order,
		PayerID:    captured.Payer.PayerID,
		PayerEmail: captured.Payer.EmailAddress,
	}, nil
}
