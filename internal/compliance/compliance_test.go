package compliance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

var today = time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

func testPermits() []entity.Permit {
	return []entity.Permit{
		{ID: "P-101", Project: "Vista Grande Development", Owner: "Sarah Jenkins", Status: entity.StatusOnTrack},
		{ID: "P-102", Project: "Riverside Industrial Park", Owner: "Mike Ross", Status: entity.StatusAtRisk},
		{ID: "P-103", Project: "Solar Farm Alpha", Owner: "Sarah Jenkins", Status: entity.StatusCompliant},
		{ID: "P-104", Project: "Downtown Mixed Use", Owner: "David Chen", Status: entity.StatusOverdue},
		{ID: "P-105", Project: "Downtown Mixed Use", Owner: "David Chen", Status: entity.StatusOverdue},
	}
}

func condition(id, due string, status entity.Status, required, uploaded bool) entity.Condition {
	return entity.Condition{
		ID:               id,
		PermitID:         "P-101",
		DueDate:          due,
		Status:           status,
		RiskLevel:        entity.RiskMedium,
		EvidenceRequired: required,
		EvidenceUploaded: uploaded,
		Owner:            "Sarah Jenkins",
	}
}

func TestKPIs_DueWithin30DaysBoundaries(t *testing.T) {
	t.Parallel()

	conditions := []entity.Condition{
		condition("C-yesterday", "2024-05-14", entity.StatusPending, false, false),
		condition("C-today", "2024-05-15", entity.StatusPending, false, false),
		condition("C-day30", "2024-06-14", entity.StatusPending, false, false),
		condition("C-day31", "2024-06-15", entity.StatusPending, false, false),
		condition("C-malformed", "June 1st", entity.StatusPending, false, false),
	}

	kpis := compliance.KPIs(testPermits(), conditions, today)

	require.Equal(t, entity.KPIs{
		ActivePermits:     5,
		DueWithin30Days:   2,
		OverdueConditions: 0,
		MissingEvidence:   0,
	}, kpis)
}

func TestKPIs_OverdueAndMissingEvidence(t *testing.T) {
	t.Parallel()

	conditions := []entity.Condition{
		condition("C-101-A", "2024-04-15", entity.StatusOnTrack, true, true),
		condition("C-101-B", "2024-05-01", entity.StatusAtRisk, true, false),
		condition("C-102-A", "2024-03-30", entity.StatusOverdue, true, false),
		condition("C-103-A", "2024-10-01", entity.StatusPending, true, false),
		condition("C-104-A", "2024-05-20", entity.StatusOverdue, false, false),
	}

	kpis := compliance.KPIs(nil, conditions, today)

	require.Equal(t, 0, kpis.ActivePermits)
	require.Equal(t, 1, kpis.DueWithin30Days)
	require.Equal(t, 2, kpis.OverdueConditions)
	require.Equal(t, 3, kpis.MissingEvidence)

	gap := compliance.Gap(conditions)
	require.False(t, gap.Empty)
	require.Len(t, gap.Items, 3)

	for _, c := range gap.Items {
		require.True(t, c.EvidenceRequired)
		require.False(t, c.EvidenceUploaded)
	}
}

func TestFilterPermits(t *testing.T) {
	t.Parallel()

	permits := testPermits()

	got := compliance.FilterPermits(permits, entity.PermitFilter{Status: "Overdue", Owner: "All", Project: "All"})
	require.Equal(t, []entity.Permit{permits[3], permits[4]}, got)

	got = compliance.FilterPermits(permits, entity.PermitFilter{Owner: "Sarah Jenkins", Project: "Solar Farm Alpha"})
	require.Equal(t, []entity.Permit{permits[2]}, got)

	got = compliance.FilterPermits(permits, entity.PermitFilter{Status: "overdue"})
	require.Empty(t, got)

	got = compliance.FilterPermits(permits, entity.PermitFilter{})
	require.Equal(t, permits, got)
}

func TestFilterConditions(t *testing.T) {
	t.Parallel()

	conditions := []entity.Condition{
		condition("C-1", "2024-05-16", entity.StatusAtRisk, true, false),
		condition("C-2", "2024-05-16", entity.StatusOverdue, true, false),
		condition("C-3", "2024-05-16", entity.StatusAtRisk, true, false),
	}

	require.Len(t, compliance.FilterConditions(conditions, "all"), 3)
	require.Len(t, compliance.FilterConditions(conditions, ""), 3)
	require.Equal(t, []entity.Condition{conditions[0], conditions[2]}, compliance.FilterConditions(conditions, "At Risk"))
}

func TestFilterOptions(t *testing.T) {
	t.Parallel()

	opts := compliance.FilterOptions(testPermits())

	require.Equal(t, []string{"David Chen", "Mike Ross", "Sarah Jenkins"}, opts.Owners)
	require.Equal(t, []string{"Downtown Mixed Use", "Riverside Industrial Park", "Solar Farm Alpha", "Vista Grande Development"}, opts.Projects)
	require.Len(t, opts.Statuses, 5)
}

func TestWeekly(t *testing.T) {
	t.Parallel()

	conditions := []entity.Condition{
		condition("C-1", "2024-05-15", entity.StatusPending, true, false),
		condition("C-2", "2024-05-22", entity.StatusAtRisk, true, false),
		condition("C-3", "2024-05-23", entity.StatusAtRisk, true, false),
		condition("C-4", "2024-05-14", entity.StatusOverdue, true, false),
	}
	conditions[1].Owner = "Mike Ross"

	report := compliance.Weekly(conditions, today)

	require.Equal(t, entity.ReportWeekly, report.Kind)
	require.Equal(t, "2024-05-15", report.Since)
	require.Equal(t, "2024-05-22", report.Until)
	require.Equal(t, []entity.Condition{conditions[0], conditions[1]}, report.Items)
	require.Equal(t, []entity.OwnerSummary{{Owner: "Mike Ross", Count: 1}, {Owner: "Sarah Jenkins", Count: 1}}, report.Owners)

	empty := compliance.Weekly(nil, today)
	require.True(t, empty.Empty)
	require.NotNil(t, empty.Items)
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	conditions := []entity.Condition{
		condition("C-1", "2024-05-01", entity.StatusOnTrack, true, true),
		condition("C-2", "2024-05-31", entity.StatusCompliant, true, true),
		condition("C-3", "2024-05-20", entity.StatusAtRisk, true, false),
		condition("C-4", "2024-05-02", entity.StatusOverdue, true, false),
		condition("C-5", "2024-06-01", entity.StatusOverdue, true, false),
		condition("C-6", "2023-05-10", entity.StatusOverdue, true, false),
	}

	report := compliance.Monthly(conditions, today)

	require.Len(t, report.Items, 4)
	require.Equal(t, "2024-05-01", report.Since)
	require.Equal(t, "2024-05-31", report.Until)
	require.NotNil(t, report.Month)
	require.Equal(t, 2, report.Month.OnTrack)
	require.Equal(t, 1, report.Month.AtRisk)
	require.Equal(t, 1, report.Month.Overdue)
	require.True(t, decimal.NewFromInt(50).Equal(report.Month.ComplianceRate))

	empty := compliance.Monthly(nil, today)
	require.True(t, empty.Empty)
	require.True(t, empty.Month.ComplianceRate.IsZero())
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, entity.StatusOverdue,
		compliance.StatusFor(condition("C-1", "2024-05-10", entity.StatusOnTrack, true, false), today))
	require.Equal(t, entity.StatusAtRisk,
		compliance.StatusFor(condition("C-2", "2024-05-20", entity.StatusPending, true, false), today))
	require.Equal(t, entity.StatusPending,
		compliance.StatusFor(condition("C-3", "2024-05-20", entity.StatusPending, false, false), today))
	require.Equal(t, entity.StatusCompliant,
		compliance.StatusFor(condition("C-4", "2024-05-10", entity.StatusCompliant, true, true), today))
	require.Equal(t, entity.StatusPending,
		compliance.StatusFor(condition("C-5", "bad", entity.StatusPending, true, false), today))
}
