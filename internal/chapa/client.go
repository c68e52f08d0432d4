// Package chapa is a thin HTTP client for the Chapa payment gateway:
// transaction initialization (hosted checkout) and server-to-server
// verification. The verify call is the only trusted source of a payment's
// outcome; callback query parameters never are.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a gateway client with the given API base URL and
// secret key.
func NewClient(apiURL, secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// InitializeTransaction asks the gateway for a hosted checkout URL.
func (c *Client) InitializeTransaction(ctx context.Context, reqParams InitializeRequest) (*InitializeResponse, error) {
	const op = "chapa.InitializeTransaction"

	req, err := c.newRequest(ctx, http.MethodPost, "/transaction/initialize", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var initResp InitializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&initResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: %w", op, gatewayError(resp.Status, initResp.Message))
	}
	if initResp.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("%s: %w", op, gatewayError(resp.Status, "missing checkout_url in response"))
	}
	return &initResp, nil
}

// VerifyTransaction fetches the authoritative status of a transaction by
// its tx_ref. Deterministic for a settled transaction, which is what makes
// callback redelivery safe to re-apply.
func (c *Client) VerifyTransaction(ctx context.Context, txRef string) (*VerifyResponse, error) {
	const op = "chapa.VerifyTransaction"

	req, err := c.newRequest(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var verifyResp VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, gatewayError(resp.Status, verifyResp.Message))
	}
	return &verifyResp, nil
}

// Succeeded reports whether the verified transaction settled successfully.
func (v *VerifyResponse) Succeeded() bool {
	return v.Status == StatusSuccess && v.Data.Status == StatusSuccess
}

func gatewayError(httpStatus, message string) error {
	if message != "" {
		return errors.New("gateway: " + message)
	}
	return errors.New("gateway: unexpected status " + httpStatus)
}
