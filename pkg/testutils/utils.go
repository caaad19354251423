package testutils

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/medctx/medctx/pkg/models"
)

var _ models.ContextModel = &FakeContextModel{}
var _ models.HealthChecker = &FakeContextModel{}

// FakeContextModel is an in-memory ContextModel. It returns Entities (or Err) for every text
// and records the texts it was called with.
type FakeContextModel struct {
	Entities []models.ContextEntity
	Err      error
	Info     *models.ModelInfo
	// Block, when set, is received from before Detect returns.
	Block chan struct{}

	mu       sync.Mutex
	texts    []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *FakeContextModel) Detect(_ context.Context, text string) ([]models.ContextEntity, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.Block != nil {
		<-f.Block
	}
	if f.Err != nil {
		return nil, f.Err
	}
	entities := make([]models.ContextEntity, len(f.Entities))
	copy(entities, f.Entities)
	return entities, nil
}

func (f *FakeContextModel) Health(_ context.Context) (*models.ModelInfo, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Info != nil {
		return f.Info, nil
	}
	return &models.ModelInfo{Model: "fake", Version: "0.0.0"}, nil
}

// Texts returns the texts Detect has been called with, in call order.
func (f *FakeContextModel) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

// MaxConcurrent reports the largest number of Detect calls that were in flight at once.
func (f *FakeContextModel) MaxConcurrent() int {
	return int(f.maxSeen.Load())
}

// RandomSpan returns a span inside [0, textLen).
func RandomSpan(faker *gofakeit.Faker, textLen int) models.Span {
	first := faker.Number(0, textLen-1)
	last := faker.Number(first, textLen)
	return models.Span{FirstPos: first, LastPos: last}
}

// RandomAnnotation returns an annotation with a random span and random flags.
func RandomAnnotation(faker *gofakeit.Faker, textLen int) models.Annotation {
	return models.Annotation{
		Span:          RandomSpan(faker, textLen),
		IsNegated:     faker.Bool(),
		IsUncertain:   faker.Bool(),
		IsConditional: faker.Bool(),
		IsHistoric:    faker.Bool(),
	}
}

// RandomEntity returns a model entity with a random span and random attributes.
func RandomEntity(faker *gofakeit.Faker, textLen int) models.ContextEntity {
	span := RandomSpan(faker, textLen)
	return models.ContextEntity{
		Start:          span.FirstPos,
		End:            span.LastPos,
		Text:           faker.Word(),
		Label:          "ENTITY",
		IsNegated:      faker.Bool(),
		IsUncertain:    faker.Bool(),
		IsHypothetical: faker.Bool(),
		IsHistorical:   faker.Bool(),
		IsFamily:       faker.Bool(),
	}
}
