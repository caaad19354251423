package nlp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/medctx/medctx/pkg/models"
)

var _ models.ContextModel = &LimitedModel{}
var _ models.HealthChecker = &LimitedModel{}

// LimitedModel bounds the number of concurrent Detect calls reaching the wrapped model.
// Callers beyond the limit queue for up to queueWait and then fail with models.ErrModelBusy.
// A zero queueWait queues until the caller's context is done.
type LimitedModel struct {
	model     models.ContextModel
	sem       *semaphore.Weighted
	queueWait time.Duration
}

// NewLimitedModel wraps model so that at most maxConcurrency calls run at once.
// A maxConcurrency below 1 is treated as 1.
func NewLimitedModel(model models.ContextModel, maxConcurrency int, queueWait time.Duration) *LimitedModel {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &LimitedModel{
		model:     model,
		sem:       semaphore.NewWeighted(int64(maxConcurrency)),
		queueWait: queueWait,
	}
}

func (m *LimitedModel) Detect(ctx context.Context, text string) ([]models.ContextEntity, error) {
	waitCtx := ctx
	if m.queueWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, m.queueWait)
		defer cancel()
	}

	if err := m.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: waited %s for a free slot", models.ErrModelBusy, m.queueWait)
	}
	defer m.sem.Release(1)

	return m.model.Detect(ctx, text)
}

// Health is not limited; it delegates when the wrapped model supports health checks.
func (m *LimitedModel) Health(ctx context.Context) (*models.ModelInfo, error) {
	hc, ok := m.model.(models.HealthChecker)
	if !ok {
		return nil, fmt.Errorf("%w: model does not support health checks", models.ErrModelUnavailable)
	}
	return hc.Health(ctx)
}
