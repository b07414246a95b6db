package compliance

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

func BuildReport(kind entity.ReportKind, conditions []entity.Condition, today time.Time) entity.Report {
	switch kind {
	case entity.ReportWeekly:
		return Weekly(conditions, today)
	case entity.ReportMonthly:
		return Monthly(conditions, today)
	default:
		return Gap(conditions)
	}
}

// Weekly lists conditions due within the next seven days with per-owner counts.
func Weekly(conditions []entity.Condition, today time.Time) entity.Report {
	items := filter(conditions, func(c entity.Condition) bool {
		return DueWithin(c, today, WeeklyWindowDays)
	})

	return entity.Report{
		Kind:   entity.ReportWeekly,
		Title:  entity.ReportWeekly.Title(),
		Since:  entity.FormatDate(today),
		Until:  entity.FormatDate(today.AddDate(0, 0, WeeklyWindowDays)),
		Items:  items,
		Owners: ownerSummary(items),
		Empty:  len(items) == 0,
	}
}

func Monthly(conditions []entity.Condition, today time.Time) entity.Report {
	items := filter(conditions, func(c entity.Condition) bool {
		return DueInMonth(c, today)
	})

	summary := entity.MonthlySummary{ComplianceRate: decimal.Zero}

	for _, c := range items {
		switch c.Status {
		case entity.StatusOnTrack, entity.StatusCompliant:
			summary.OnTrack++
		case entity.StatusAtRisk:
			summary.AtRisk++
		case entity.StatusOverdue:
			summary.Overdue++
		}
	}

	if len(items) > 0 {
		summary.ComplianceRate = decimal.NewFromInt(int64(summary.OnTrack)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(len(items)))).
			Round(1)
	}

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	return entity.Report{
		Kind:  entity.ReportMonthly,
		Title: entity.ReportMonthly.Title(),
		Since: entity.FormatDate(first),
		Until: entity.FormatDate(first.AddDate(0, 1, -1)),
		Items: items,
		Month: &summary,
		Empty: len(items) == 0,
	}
}

func Gap(conditions []entity.Condition) entity.Report {
	items := filter(conditions, entity.Condition.MissingEvidence)

	return entity.Report{
		Kind:  entity.ReportGap,
		Title: entity.ReportGap.Title(),
		Items: items,
		Empty: len(items) == 0,
	}
}

func ownerSummary(items []entity.Condition) []entity.OwnerSummary {
	counts := make(map[string]int)

	for _, c := range items {
		counts[c.Owner]++
	}

	owners := make([]entity.OwnerSummary, 0, len(counts))
	for owner, count := range counts {
		owners = append(owners, entity.OwnerSummary{Owner: owner, Count: count})
	}

	slices.SortFunc(owners, func(a, b entity.OwnerSummary) int {
		return strings.Compare(a.Owner, b.Owner)
	})

	return owners
}
