package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ReportKind string

const (
	ReportWeekly  ReportKind = "weekly"
	ReportMonthly ReportKind = "monthly"
	ReportGap     ReportKind = "gap"
)

func (k ReportKind) String() string {
	return string(k)
}

func (k ReportKind) IsValid() bool {
	switch k {
	case ReportWeekly, ReportMonthly, ReportGap:
		return true
	default:
		return false
	}
}

func (k ReportKind) Title() string {
	switch k {
	case ReportWeekly:
		return "Weekly Owner Digest"
	case ReportMonthly:
		return "Monthly Compliance Rollup"
	case ReportGap:
		return "Evidence Gap Analysis"
	default:
		return fmt.Sprintf("Report %s", string(k))
	}
}

type KPIs struct {
	ActivePermits     int `json:"activePermits"`
	DueWithin30Days   int `json:"dueWithin30Days"`
	OverdueConditions int `json:"overdueConditions"`
	MissingEvidence   int `json:"missingEvidence"`
}

type OwnerSummary struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

type MonthlySummary struct {
	OnTrack        int             `json:"onTrack"`
	AtRisk         int             `json:"atRisk"`
	Overdue        int             `json:"overdue"`
	ComplianceRate decimal.Decimal `json:"complianceRate"`
}

type Report struct {
	Kind   ReportKind      `json:"kind"`
	Title  string          `json:"title"`
	Since  string          `json:"since,omitempty"`
	Until  string          `json:"until,omitempty"`
	Items  []Condition     `json:"items"`
	Owners []OwnerSummary  `json:"owners,omitempty"`
	Month  *MonthlySummary `json:"month,omitempty"`
	Empty  bool            `json:"empty"`
}

type Dashboard struct {
	Today   string        `json:"today"`
	KPIs    KPIs          `json:"kpis"`
	Filter  PermitFilter  `json:"filter"`
	Permits []Permit      `json:"permits"`
	Options FilterOptions `json:"options"`
	Empty   bool          `json:"empty"`
}

type ExportedFile struct {
	Name        string
	ContentType string
	Data        []byte
}
