package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/matchclock/go/internal/health"
)

// HealthClient reads the daemon's /health endpoint.
type HealthClient struct {
	base *BaseClient
}

func NewHealthClient(base *BaseClient) *HealthClient {
	return &HealthClient{base: base}
}

// Check returns the reported status. An unhealthy daemon answers 503 with a
// status body; that is decoded and returned without an error.
func (c *HealthClient) Check(ctx context.Context) (health.Status, error) {
	body, err := c.base.Get(ctx, "/health")
	var statusErr *StatusError
	if err != nil && !errors.As(err, &statusErr) {
		return health.Status{}, err
	}

	var status health.Status
	if decodeErr := json.Unmarshal(body, &status); decodeErr != nil {
		if err != nil {
			return health.Status{}, err
		}
		return health.Status{}, fmt.Errorf("failed to decode health response: %w", decodeErr)
	}
	return status, nil
}
