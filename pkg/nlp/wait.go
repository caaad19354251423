package nlp

import (
	"context"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/medctx/medctx/pkg/models"
)

// WaitForServer probes the NLP server until it reports healthy, retrying up to maxRetries
// times with backoff. Loading a large spaCy model can take a while after the sidecar starts.
func WaitForServer(
	ctx context.Context,
	hc models.HealthChecker,
	maxRetries int,
) (*models.ModelInfo, error) {
	healthRetryPolicy := retrypolicy.Builder[any]().
		HandleErrors(models.ErrModelUnavailable).
		WithBackoff(500*time.Millisecond, 10*time.Second).
		WithMaxRetries(maxRetries).
		Build()

	infoVal, err := failsafe.Get(func() (any, error) {
		info, err := hc.Health(ctx)
		if err != nil {
			log.Warnf("nlp server health check failed: %v", err)
			return nil, err
		}
		return info, nil
	}, healthRetryPolicy)
	if err != nil {
		return nil, fmt.Errorf("nlp server is not ready: %w", err)
	}

	info, ok := infoVal.(*models.ModelInfo)
	if !ok {
		return nil, fmt.Errorf("nlp server is not ready: %w", models.ErrModelUnavailable)
	}

	return info, nil
}
