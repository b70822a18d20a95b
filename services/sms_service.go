package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-booking/utils"
)

const defaultSMSURL = "https://www.smsnotif.id/api/messages"

// SMSService handles smsnotif.id API interactions
type SMSService struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

var (
	smsService *SMSService
	smsOnce    sync.Once
)

// GetSMSService returns singleton instance of SMSService
func GetSMSService() *SMSService {
	smsOnce.Do(func() {
		baseURL := os.Getenv("SMSNOTIF_URL")
		if baseURL == "" {
			baseURL = defaultSMSURL
		}

		smsService = &SMSService{
			APIKey:  os.Getenv("SMSNOTIF_API_KEY"),
			BaseURL: baseURL,
			httpClient: &http.Client{
				Timeout: 15 * time.Second,
			},
		}
	})
	return smsService
}

// NewSMSService untuk testing dengan endpoint custom.
func NewSMSService(apiKey, baseURL string) *SMSService {
	return &SMSService{
		APIKey:  apiKey,
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send mengirim satu SMS. Error dikembalikan ke caller untuk di-log saja,
// tidak boleh mempengaruhi response operasi booking.
func (ss *SMSService) Send(phoneNumber, message string) error {
	if ss.APIKey == "" {
		utils.InfoLogger.Println("SMSNOTIF_API_KEY is not set, skipping SMS notification")
		return nil
	}
	if phoneNumber == "" {
		return nil
	}

	payload, err := json.Marshal(smsRequest{To: phoneNumber, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, ss.BaseURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ss.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := ss.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SMS API returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
