package service

import (
	"github.com/google/uuid"
)

// DiffLabels считает минимальный дифф между текущим и желаемым наборами
// лейблов задачи. Дубликаты схлопываются, порядок элементов не важен,
// id из обоих наборов не попадает ни в toAdd, ни в toRemove.
func DiffLabels(existing, desired []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))

	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	toAdd = []uuid.UUID{}
	toRemove = []uuid.UUID{}

	seen := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := existingSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	seen = make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	return toAdd, toRemove
}
