package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/dalfonso89/fx-summary-service/internal/models"
)

// MockRateServer is a scriptable stand-in for the rate provider's
// time-series endpoint. It can be told to fail a number of leading requests,
// force a status code, or return a raw body, and it counts every request it
// sees so tests can assert how often the network was hit.
type MockRateServer struct {
	server *httptest.Server

	mu           sync.Mutex
	requestCount int
	failLeading  int
	forcedStatus int
	forcedBody   string
	document     models.RateDocument
}

// NewMockRateServer creates a mock provider serving MockRateDocument.
func NewMockRateServer() *MockRateServer {
	mock := &MockRateServer{
		document: MockRateDocument(),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

func (m *MockRateServer) handler(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestCount++
	failLeading := m.failLeading
	if failLeading > 0 {
		m.failLeading--
	}
	forcedStatus := m.forcedStatus
	forcedBody := m.forcedBody
	document := m.document
	m.mu.Unlock()

	if failLeading > 0 {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	}

	if forcedStatus != 0 {
		w.WriteHeader(forcedStatus)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if forcedBody != "" {
		_, _ = w.Write([]byte(forcedBody))
		return
	}

	_ = json.NewEncoder(w).Encode(document)
}

// URL returns the mock server URL
func (m *MockRateServer) URL() string {
	return m.server.URL
}

// Close closes the mock server
func (m *MockRateServer) Close() {
	m.server.Close()
}

// RequestCount returns how many requests the server has received.
func (m *MockRateServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// FailLeading makes the next n requests respond 500.
func (m *MockRateServer) FailLeading(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLeading = n
}

// ForceStatus makes every request respond with statusCode and no body.
// Pass 0 to restore normal responses.
func (m *MockRateServer) ForceStatus(statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedStatus = statusCode
}

// ForceBody makes every request respond 200 with the given raw body.
func (m *MockRateServer) ForceBody(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedBody = body
}

// SetDocument replaces the document served on success.
func (m *MockRateServer) SetDocument(document models.RateDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = document
}
