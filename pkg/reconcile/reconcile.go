package reconcile

import (
	"context"
	"fmt"

	"github.com/medctx/medctx/internal"
	"github.com/medctx/medctx/pkg/models"
)

var log = internal.GetLogger()

// Reconcile matches every annotation against entities and merges the pairs that match.
// Unmatched annotations are dropped; the order of the survivors is preserved.
func Reconcile(annotations []models.Annotation, entities []models.ContextEntity) []models.Annotation {
	results := make([]models.Annotation, 0, len(annotations))
	for _, annotation := range annotations {
		entity, _ := FindMatch(annotation.Span, entities)
		if merged, ok := Merge(annotation, entity); ok {
			results = append(results, merged)
		}
	}
	return results
}

// Process runs the context model once over the report and reconciles the request's
// annotations against the detected entities.
func Process(
	ctx context.Context,
	model models.ContextModel,
	request *models.ProcessRequest,
) (*models.ProcessResponse, error) {
	entities, err := model.Detect(ctx, request.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to detect context entities for %q: %w", request.Accnum, err)
	}

	results := Reconcile(request.Annotations, entities)

	log.Debugf(
		"accnum %s: %d annotations, %d model entities, %d matched",
		request.Accnum,
		len(request.Annotations),
		len(entities),
		len(results),
	)

	return &models.ProcessResponse{Annotations: results}, nil
}
