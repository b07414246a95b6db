package compliance

import (
	"github.com/samandr77/microservices/compliance/internal/entity"
)

// FilterPermits keeps the permits matching every set dimension of f, in source order.
func FilterPermits(permits []entity.Permit, f entity.PermitFilter) []entity.Permit {
	return filter(permits, f.Match)
}

// FilterConditions keeps conditions with the given status; "all" or "" keeps everything.
func FilterConditions(conditions []entity.Condition, status string) []entity.Condition {
	if status == "" || status == "all" || status == entity.FilterAll {
		return filter(conditions, func(entity.Condition) bool { return true })
	}

	return filter(conditions, func(c entity.Condition) bool {
		return string(c.Status) == status
	})
}

func ConditionsForPermit(conditions []entity.Condition, permitID string) []entity.Condition {
	return filter(conditions, func(c entity.Condition) bool {
		return c.PermitID == permitID
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, v := range items {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}
