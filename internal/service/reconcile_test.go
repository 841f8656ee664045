package service_test

import (
	"testing"

	"boardTracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestDiffLabels тестирует вычисление диффа наборов лейблов
func TestDiffLabels(t *testing.T) {
	l1 := uuid.New()
	l2 := uuid.New()
	l3 := uuid.New()

	tests := []struct {
		name           string
		existing       []uuid.UUID
		desired        []uuid.UUID
		expectedAdd    []uuid.UUID
		expectedRemove []uuid.UUID
	}{
		{
			name:           "replace one label",
			existing:       []uuid.UUID{l1, l2},
			desired:        []uuid.UUID{l2, l3},
			expectedAdd:    []uuid.UUID{l3},
			expectedRemove: []uuid.UUID{l1},
		},
		{
			name:           "same set - no changes",
			existing:       []uuid.UUID{l1, l2},
			desired:        []uuid.UUID{l2, l1},
			expectedAdd:    []uuid.UUID{},
			expectedRemove: []uuid.UUID{},
		},
		{
			name:           "empty desired removes everything",
			existing:       []uuid.UUID{l1, l2, l3},
			desired:        []uuid.UUID{},
			expectedAdd:    []uuid.UUID{},
			expectedRemove: []uuid.UUID{l1, l2, l3},
		},
		{
			name:           "empty existing adds everything",
			existing:       []uuid.UUID{},
			desired:        []uuid.UUID{l1, l3},
			expectedAdd:    []uuid.UUID{l1, l3},
			expectedRemove: []uuid.UUID{},
		},
		{
			name:           "both empty",
			existing:       []uuid.UUID{},
			desired:        []uuid.UUID{},
			expectedAdd:    []uuid.UUID{},
			expectedRemove: []uuid.UUID{},
		},
		{
			name:           "duplicates collapse",
			existing:       []uuid.UUID{l1, l1, l2},
			desired:        []uuid.UUID{l2, l3, l3},
			expectedAdd:    []uuid.UUID{l3},
			expectedRemove: []uuid.UUID{l1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toAdd, toRemove := service.DiffLabels(tt.existing, tt.desired)

			assert.ElementsMatch(t, tt.expectedAdd, toAdd)
			assert.ElementsMatch(t, tt.expectedRemove, toRemove)

			// пустые диффы возвращаются срезами, не nil
			assert.NotNil(t, toAdd)
			assert.NotNil(t, toRemove)

			// toAdd и toRemove не пересекаются
			for _, a := range toAdd {
				assert.NotContains(t, toRemove, a)
			}
		})
	}
}

// дифф, применённый к existing, даёт ровно desired
func TestDiffLabels_Applied(t *testing.T) {
	l1 := uuid.New()
	l2 := uuid.New()
	l3 := uuid.New()
	l4 := uuid.New()

	existing := []uuid.UUID{l1, l2, l3}
	desired := []uuid.UUID{l2, l4}

	toAdd, toRemove := service.DiffLabels(existing, desired)

	result := map[uuid.UUID]struct{}{}
	for _, id := range existing {
		result[id] = struct{}{}
	}
	for _, id := range toRemove {
		delete(result, id)
	}
	for _, id := range toAdd {
		result[id] = struct{}{}
	}

	final := make([]uuid.UUID, 0, len(result))
	for id := range result {
		final = append(final, id)
	}
	assert.ElementsMatch(t, desired, final)
}

// повторный дифф после применения пуст
func TestDiffLabels_Idempotent(t *testing.T) {
	desired := []uuid.UUID{uuid.New(), uuid.New()}

	toAdd, toRemove := service.DiffLabels(desired, desired)
	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}
