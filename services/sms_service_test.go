package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-booking/utils"
)

func TestSendSMS(t *testing.T) {
	utils.InitLogger()

	var gotAuth string
	var gotBody smsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"sent"}`))
	}))
	defer server.Close()

	ss := NewSMSService("test-key", server.URL)
	err := ss.Send("+6281234567890", "Your booking is confirmed")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "+6281234567890", gotBody.To)
	assert.Equal(t, "Your booking is confirmed", gotBody.Message)
}

func TestSendSMSAPIError(t *testing.T) {
	utils.InitLogger()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"invalid number"}`))
	}))
	defer server.Close()

	ss := NewSMSService("test-key", server.URL)
	err := ss.Send("not-a-number", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSendSMSWithoutAPIKey(t *testing.T) {
	utils.InitLogger()

	// Tanpa API key pengiriman dilewati tanpa error
	ss := NewSMSService("", "http://localhost:0")
	assert.NoError(t, ss.Send("+6281234567890", "hello"))
}

func TestSendSMSEmptyDestination(t *testing.T) {
	utils.InitLogger()

	ss := NewSMSService("test-key", "http://localhost:0")
	assert.NoError(t, ss.Send("", "hello"))
}
