package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

const defaultTimeout = 10 * time.Second

// CollectRequest is the gateway's answer to a collect-request call.
type CollectRequest struct {
	CollectRequestID  string `json:"collect_request_id"`
	CollectRequestURL string `json:"collect_request_url"`
	GatewayName       string `json:"gateway_name"`
}

// Client talks to the external collect-request payment gateway. Each request
// body carries an HS256 signature over the school id, the amount as a string
// and the callback URL, produced with the shared gateway secret.
type Client struct {
	baseURL    string
	apiKey     string
	secret     string
	schoolID   string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, secret, schoolID string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		secret:     secret,
		schoolID:   schoolID,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CreateCollectRequest asks the gateway to open a hosted collection for the
// given amount. A timeout or non-2xx answer is an initiation failure; the
// upstream response body is preserved in the error for diagnosis.
func (c *Client) CreateCollectRequest(ctx context.Context, amount float64, callbackURL string) (*CollectRequest, error) {
	payload := map[string]interface{}{
		"school_id":    c.schoolID,
		"amount":       strconv.FormatFloat(amount, 'f', -1, 64),
		"callback_url": callbackURL,
	}

	sign, err := c.sign(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to sign collect request: %v", err)
	}
	payload["sign"] = sign

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collect request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/create-collect-request", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(respBody))
	}

	var collect CollectRequest
	if err := json.Unmarshal(respBody, &collect); err != nil {
		return nil, fmt.Errorf("malformed gateway response: %v", err)
	}
	if collect.CollectRequestID == "" || collect.CollectRequestURL == "" {
		return nil, fmt.Errorf("gateway response missing collect request fields: %s", string(respBody))
	}

	return &collect, nil
}

func (c *Client) sign(payload map[string]interface{}) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.secret))
}
