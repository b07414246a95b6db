// Package compliance holds the pure filter, aggregation and export logic
// behind the dashboard and reports. Nothing here mutates its inputs.
package compliance

import (
	"slices"
	"time"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const (
	DueSoonWindowDays = 30
	WeeklyWindowDays  = 7
	AtRiskWindowDays  = 7
)

func KPIs(permits []entity.Permit, conditions []entity.Condition, today time.Time) entity.KPIs {
	kpis := entity.KPIs{
		ActivePermits: len(permits),
	}

	for _, c := range conditions {
		if DueWithin(c, today, DueSoonWindowDays) {
			kpis.DueWithin30Days++
		}

		if c.Status == entity.StatusOverdue {
			kpis.OverdueConditions++
		}

		if c.MissingEvidence() {
			kpis.MissingEvidence++
		}
	}

	return kpis
}

// DueWithin reports whether c is due in [today, today+days], both ends inclusive.
func DueWithin(c entity.Condition, today time.Time, days int) bool {
	due, ok := entity.ParseDate(c.DueDate)
	if !ok {
		return false
	}

	diff := entity.DaysBetween(today, due)

	return diff >= 0 && diff <= days
}

func DueInMonth(c entity.Condition, today time.Time) bool {
	due, ok := entity.ParseDate(c.DueDate)
	if !ok {
		return false
	}

	return due.Year() == today.Year() && due.Month() == today.Month()
}

func PastDue(c entity.Condition, today time.Time) bool {
	due, ok := entity.ParseDate(c.DueDate)
	if !ok {
		return false
	}

	return entity.DaysBetween(today, due) < 0
}

// StatusFor derives the status a condition should carry on the given day.
func StatusFor(c entity.Condition, today time.Time) entity.Status {
	if c.EvidenceUploaded || c.Status == entity.StatusCompliant {
		return c.Status
	}

	if PastDue(c, today) {
		return entity.StatusOverdue
	}

	if c.MissingEvidence() && DueWithin(c, today, AtRiskWindowDays) {
		return entity.StatusAtRisk
	}

	return c.Status
}

func FilterOptions(permits []entity.Permit) entity.FilterOptions {
	owners := make([]string, 0, len(permits))
	projects := make([]string, 0, len(permits))

	for _, p := range permits {
		owners = append(owners, p.Owner)
		projects = append(projects, p.Project)
	}

	slices.Sort(owners)
	slices.Sort(projects)

	return entity.FilterOptions{
		Statuses: entity.Statuses(),
		Owners:   slices.Compact(owners),
		Projects: slices.Compact(projects),
	}
}
