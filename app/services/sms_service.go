// Package services provides external service integrations and technical concerns like SMS delivery and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shiftwave/shiftwave/config"
	"github.com/shiftwave/shiftwave/utils"
)

// SMSService hands one message to the provider. Send returns the provider's
// message id, which delivery callbacks later reference.
type SMSService interface {
	Send(ctx context.Context, recipient, body string) (providerMessageID string, err error)
	Name() string
}

// SMSServiceImpl implements SMSService against the HTTP gateway
type SMSServiceImpl struct {
	config *config.SMSConfig
	client *http.Client
}

// SMSRequest represents the request payload for the SMS API
type SMSRequest struct {
	SrcNum         string `json:"srcNum"`
	Recipient      string `json:"recipient"`
	Body           string `json:"body"`
	Type           int    `json:"type"` // Always 1
	ValidityPeriod int    `json:"validityPeriod"`
}

// SMSResponse represents an individual message result from the SMS API
type SMSResponse struct {
	MessageID  int64  `json:"messageId"`
	SrcNum     string `json:"srcNum"`
	Recipient  string `json:"recipient"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
}

// NewSMSService creates a new SMS service instance
func NewSMSService(cfg *config.SMSConfig) SMSService {
	return &SMSServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name reports the configured provider name for message records
func (s *SMSServiceImpl) Name() string {
	return s.config.ProviderName
}

// Send submits one message and returns the provider's message id. The caller
// owns retries: a non-ACCEPTED status or transport error surfaces as-is.
func (s *SMSServiceImpl) Send(ctx context.Context, recipient, body string) (string, error) {
	requests := []SMSRequest{{
		SrcNum:         s.config.SourceNumber,
		Recipient:      recipient,
		Body:           body,
		Type:           1,
		ValidityPeriod: s.config.ValidityPeriod,
	}}

	requestBody, err := json.Marshal(requests)
	if err != nil {
		return "", fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	url := fmt.Sprintf("https://%s/api/v3.0.1/send", s.config.ProviderDomain)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	var results []SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("failed to decode SMS response: %w", err)
	}
	if len(results) != 1 {
		return "", fmt.Errorf("SMS gateway returned %d results for 1 message", len(results))
	}

	result := results[0]
	if result.StatusCode != 200 || result.Status != "ACCEPTED" {
		return "", fmt.Errorf("SMS delivery failed for %s: %s (%d)", utils.MaskPhone(recipient), result.Status, result.StatusCode)
	}

	return strconv.FormatInt(result.MessageID, 10), nil
}

// MockSMSService implements SMSService for testing and the "mock" provider
// domain. Ids are deterministic per instance.
type MockSMSService struct {
	mu           sync.Mutex
	SentMessages []MockSMSMessage
	FailFor      map[string]error // recipient -> forced error
	nextID       int64
}

// MockSMSMessage represents a recorded mock send
type MockSMSMessage struct {
	Recipient string
	Body      string
	SentAt    time.Time
}

// NewMockSMSService creates a new mock SMS service
func NewMockSMSService() *MockSMSService {
	return &MockSMSService{
		SentMessages: make([]MockSMSMessage, 0),
		FailFor:      make(map[string]error),
	}
}

// Name reports the mock provider name
func (m *MockSMSService) Name() string { return "mock" }

// Send records the message and returns a deterministic id
func (m *MockSMSService) Send(ctx context.Context, recipient, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailFor[recipient]; ok {
		return "", err
	}

	m.nextID++
	m.SentMessages = append(m.SentMessages, MockSMSMessage{
		Recipient: recipient,
		Body:      body,
		SentAt:    utils.UTCNow(),
	})
	return fmt.Sprintf("mock-%d", m.nextID), nil
}

// GetSentMessages returns all recorded mock sends
func (m *MockSMSService) GetSentMessages() []MockSMSMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSMSMessage, len(m.SentMessages))
	copy(out, m.SentMessages)
	return out
}

// ClearSentMessages clears the recorded sends
func (m *MockSMSService) ClearSentMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = m.SentMessages[:0]
}
