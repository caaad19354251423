package reconcile

import "github.com/medctx/medctx/pkg/models"

// Merge combines an input annotation with its matched entity. Flags are OR-ed, the subject
// comes from the entity alone, and the offsets are always the annotation's own.
// It returns false when there is no entity to merge with.
func Merge(annotation models.Annotation, entity *models.ContextEntity) (models.Annotation, bool) {
	if entity == nil {
		return models.Annotation{}, false
	}

	subject := models.SubjectPatient
	if entity.IsFamily {
		subject = models.SubjectFamily
	}

	return models.Annotation{
		Span:          annotation.Span,
		IsNegated:     annotation.IsNegated || entity.IsNegated,
		IsUncertain:   annotation.IsUncertain || entity.IsUncertain,
		IsConditional: annotation.IsConditional || entity.IsHypothetical,
		IsHistoric:    annotation.IsHistoric || entity.IsHistorical,
		Subject:       subject,
	}, true
}
