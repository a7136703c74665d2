package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCollectRequest(t *testing.T) {
	var captured struct {
		auth string
		body map[string]interface{}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/create-collect-request", r.URL.Path)
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		json.NewEncoder(w).Encode(map[string]string{
			"collect_request_id":  "C1",
			"collect_request_url": "https://pay.example.com/C1",
			"gateway_name":        "PhonePe",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", "pg-secret", "SCH001")
	collect, err := client.CreateCollectRequest(context.Background(), 500, "https://app.example.com/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "C1", collect.CollectRequestID)
	assert.Equal(t, "https://pay.example.com/C1", collect.CollectRequestURL)
	assert.Equal(t, "PhonePe", collect.GatewayName)

	assert.Equal(t, "Bearer api-key", captured.auth)
	assert.Equal(t, "SCH001", captured.body["school_id"])
	assert.Equal(t, "500", captured.body["amount"], "amount travels as a string")
	assert.Equal(t, "https://app.example.com/dashboard", captured.body["callback_url"])

	// The sign field is an HS256 token over the other body fields.
	signed, ok := captured.body["sign"].(string)
	require.True(t, ok)
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("pg-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "SCH001", claims["school_id"])
	assert.Equal(t, "500", claims["amount"])
	assert.Equal(t, "https://app.example.com/dashboard", claims["callback_url"])
}

func TestCreateCollectRequestUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid school"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", "pg-secret", "SCH001")
	_, err := client.CreateCollectRequest(context.Background(), 500, "https://app.example.com/dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid school")
}

func TestCreateCollectRequestMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway down</html>"},
		{"missing url", `{"collect_request_id":"C1"}`},
		{"missing id", `{"collect_request_url":"https://pay.example.com/C1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "api-key", "pg-secret", "SCH001")
			_, err := client.CreateCollectRequest(context.Background(), 500, "https://app.example.com/dashboard")
			require.Error(t, err)
		})
	}
}
