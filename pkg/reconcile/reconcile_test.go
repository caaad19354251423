package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medctx/medctx/pkg/models"
	"github.com/medctx/medctx/pkg/testutils"
)

func TestProcessNoFever(t *testing.T) {
	model := &testutils.FakeContextModel{Entities: testutils.NoFeverEntities}
	request := &models.ProcessRequest{
		Accnum: "A1",
		Report: testutils.NoFeverReport,
		Annotations: []models.Annotation{
			{Span: models.Span{FirstPos: 0, LastPos: 7}},
		},
	}

	response, err := Process(context.Background(), model, request)
	require.NoError(t, err)

	assert.Equal(t, []models.Annotation{
		{
			Span:      models.Span{FirstPos: 0, LastPos: 7},
			IsNegated: true,
			Subject:   models.SubjectPatient,
		},
	}, response.Annotations)
	assert.Equal(t, []string{testutils.NoFeverReport}, model.Texts())
}

func TestProcessFamilyHistory(t *testing.T) {
	model := &testutils.FakeContextModel{Entities: testutils.FamilyHistoryEntities}
	request := &models.ProcessRequest{
		Accnum: "A2",
		Report: testutils.FamilyHistoryReport,
		Annotations: []models.Annotation{
			{Span: models.Span{FirstPos: 75, LastPos: 80}},
			{Span: models.Span{FirstPos: 0, LastPos: 7}},
			{Span: models.Span{FirstPos: 45, LastPos: 51}, IsHistoric: false},
			{Span: models.Span{FirstPos: 21, LastPos: 25}, IsUncertain: true},
		},
	}

	response, err := Process(context.Background(), model, request)
	require.NoError(t, err)

	assert.Equal(t, []models.Annotation{
		{Span: models.Span{FirstPos: 75, LastPos: 80}, IsConditional: true, Subject: models.SubjectPatient},
		{Span: models.Span{FirstPos: 45, LastPos: 51}, IsHistoric: true, Subject: models.SubjectFamily},
		{Span: models.Span{FirstPos: 21, LastPos: 25}, IsNegated: true, IsUncertain: true, Subject: models.SubjectPatient},
	}, response.Annotations)
}

func TestProcessEmptyAnnotations(t *testing.T) {
	model := &testutils.FakeContextModel{Entities: testutils.NoFeverEntities}

	response, err := Process(context.Background(), model, &models.ProcessRequest{
		Report:      testutils.NoFeverReport,
		Annotations: []models.Annotation{},
	})
	require.NoError(t, err)
	assert.NotNil(t, response.Annotations)
	assert.Empty(t, response.Annotations)
}

func TestProcessEmptyReportDropsEverything(t *testing.T) {
	model := &testutils.FakeContextModel{}

	response, err := Process(context.Background(), model, &models.ProcessRequest{
		Annotations: []models.Annotation{{Span: models.Span{FirstPos: 0, LastPos: 3}}},
	})
	require.NoError(t, err)
	assert.Empty(t, response.Annotations)
	assert.Equal(t, []string{""}, model.Texts())
}

func TestProcessModelError(t *testing.T) {
	model := &testutils.FakeContextModel{Err: models.NewModelError(500, "boom")}

	_, err := Process(context.Background(), model, &models.ProcessRequest{Accnum: "A3"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrModelUnavailable))
	assert.Contains(t, err.Error(), "A3")
}

func TestReconcileProperties(t *testing.T) {
	faker := gofakeit.New(7)
	const textLen = 200

	for i := 0; i < 200; i++ {
		annotations := make([]models.Annotation, faker.Number(0, 15))
		for j := range annotations {
			annotations[j] = testutils.RandomAnnotation(faker, textLen)
			// tag each annotation so order can be checked after merging
			annotations[j].FirstPos = j * 10
			annotations[j].LastPos = annotations[j].FirstPos + faker.Number(0, 9)
		}
		entities := make([]models.ContextEntity, faker.Number(0, 10))
		for j := range entities {
			entities[j] = testutils.RandomEntity(faker, textLen)
		}

		results := Reconcile(annotations, entities)
		assert.LessOrEqual(t, len(results), len(annotations))

		// survivors keep their relative order and are exactly the matched annotations
		next := 0
		for _, annotation := range annotations {
			_, matched := FindMatch(annotation.Span, entities)
			if !matched {
				continue
			}
			require.Less(t, next, len(results))
			assert.Equal(t, annotation.Span, results[next].Span)
			if annotation.IsNegated {
				assert.True(t, results[next].IsNegated)
			}
			next++
		}
		assert.Equal(t, next, len(results))
	}
}
