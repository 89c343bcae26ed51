package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HealthStatus is the decoded body of GET /health
type HealthStatus struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Redis    string            `json:"redis"`
	Details  map[string]string `json:"details,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// PingService calls the health endpoint of a running server at baseURL
func PingService(baseURL string, timeout time.Duration) (*HealthStatus, error) {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	var status HealthStatus
	resp, err := client.R().SetResult(&status).SetError(&status).Get("/health")
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", baseURL, err)
	}
	if resp.IsError() {
		return &status, fmt.Errorf("health check returned %d: %s", resp.StatusCode(), status.Error)
	}
	return &status, nil
}
