package reconcile

import "github.com/medctx/medctx/pkg/models"

// FindMatch returns the model entity that corresponds to target. An entity with exactly the
// same bounds wins; failing that, the first entity overlapping target is returned. Spans that
// only touch at an endpoint do not overlap.
func FindMatch(target models.Span, candidates []models.ContextEntity) (*models.ContextEntity, bool) {
	for i := range candidates {
		if candidates[i].Start == target.FirstPos && candidates[i].End == target.LastPos {
			return &candidates[i], true
		}
	}

	for i := range candidates {
		if candidates[i].Start < target.LastPos && candidates[i].End > target.FirstPos {
			return &candidates[i], true
		}
	}

	return nil, false
}
