package chapa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    string
		wantErr     bool
		wantURL     string
		errContains string
	}{
		{
			name:       "successful initialize",
			statusCode: http.StatusOK,
			response:   `{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.chapa.co/checkout/payment/abc"}}`,
			wantURL:    "https://checkout.chapa.co/checkout/payment/abc",
		},
		{
			name:        "gateway rejects request",
			statusCode:  http.StatusBadRequest,
			response:    `{"status":"failed","message":"Invalid currency"}`,
			wantErr:     true,
			errContains: "Invalid currency",
		},
		{
			name:        "ok status but missing checkout url",
			statusCode:  http.StatusOK,
			response:    `{"status":"success","message":"","data":{}}`,
			wantErr:     true,
			errContains: "missing checkout_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/transaction/initialize", r.URL.Path)
				assert.Equal(t, "Bearer test-secret", r.Header.Get("Authorization"))

				var body InitializeRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "reg-123", body.TxRef)

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-secret")
			resp, err := client.InitializeTransaction(context.Background(), InitializeRequest{
				Amount:      "500",
				Currency:    "ETB",
				Email:       "abel@example.org",
				FirstName:   "Abel",
				TxRef:       "reg-123",
				CallbackURL: "http://localhost:8080/api/v1/payments/callback",
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, resp.Data.CheckoutURL)
		})
	}
}

func TestVerifyTransaction(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		response      string
		wantErr       bool
		wantSucceeded bool
		wantAmount    float64
	}{
		{
			name:          "verified success",
			statusCode:    http.StatusOK,
			response:      `{"status":"success","message":"verified","data":{"status":"success","id":"tx-9","payment_type":"telebirr","amount":500}}`,
			wantSucceeded: true,
			wantAmount:    500,
		},
		{
			name:          "verified failed transaction",
			statusCode:    http.StatusOK,
			response:      `{"status":"success","message":"verified","data":{"status":"failed","id":"tx-9","payment_type":"","amount":0}}`,
			wantSucceeded: false,
		},
		{
			name:       "unknown tx_ref",
			statusCode: http.StatusNotFound,
			response:   `{"status":"failed","message":"transaction not found"}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/transaction/verify/reg-123", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-secret")
			resp, err := client.VerifyTransaction(context.Background(), "reg-123")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSucceeded, resp.Succeeded())
			assert.Equal(t, tt.wantAmount, resp.Data.Amount)
		})
	}
}

func TestVerifyTransaction_Deterministic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","message":"verified","data":{"status":"success","id":"tx-9","payment_type":"card","amount":500}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-secret")

	first, err := client.VerifyTransaction(context.Background(), "reg-123")
	require.NoError(t, err)
	second, err := client.VerifyTransaction(context.Background(), "reg-123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
