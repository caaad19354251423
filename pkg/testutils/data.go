package testutils

import "github.com/medctx/medctx/pkg/models"

// NoFeverReport is a two-word report with a single negated finding.
const NoFeverReport = "No fever"

var NoFeverEntities = []models.ContextEntity{
	{Start: 3, End: 8, Text: "fever", Label: "ENTITY", IsNegated: true},
}

// FamilyHistoryReport mentions the patient's own finding and a family member's condition.
const FamilyHistoryReport = "Patient denies chest pain. Mother had breast cancer. Possible pneumonia if fever returns."

var FamilyHistoryEntities = []models.ContextEntity{
	{Start: 15, End: 25, Text: "chest pain", Label: "ENTITY", IsNegated: true},
	{Start: 38, End: 51, Text: "breast cancer", Label: "ENTITY", IsFamily: true, IsHistorical: true},
	{Start: 62, End: 71, Text: "pneumonia", Label: "ENTITY", IsUncertain: true},
	{Start: 75, End: 80, Text: "fever", Label: "ENTITY", IsHypothetical: true},
}
