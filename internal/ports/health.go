package ports

import "context"

type DependencyStatus struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type DatabaseHealthChecker interface {
	Ping(ctx context.Context) error
}
