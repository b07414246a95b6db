package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const (
	CSVContentType  = "text/csv;charset=utf-8"
	TextContentType = "text/plain;charset=utf-8"
)

var (
	permitCSVHeader    = []string{"ID", "Name", "Project", "Jurisdiction", "Type", "Status", "Expiration Date", "Owner"}
	conditionCSVHeader = []string{"ID", "Permit ID", "Description", "Due Date", "Status", "Risk Level", "Owner"}
)

func PermitsCSVName(now time.Time) string {
	return fmt.Sprintf("FCS_Permits_Export_%s.csv", entity.FormatDate(now))
}

// PermitsCSV renders permits in the dashboard export layout: free-text
// columns are always quoted, the rest are written as is.
func PermitsCSV(permits []entity.Permit) []byte {
	lines := make([]string, 0, len(permits)+1)
	lines = append(lines, strings.Join(permitCSVHeader, ","))

	for _, p := range permits {
		lines = append(lines, strings.Join([]string{
			p.ID,
			quote(p.Name),
			quote(p.Project),
			quote(p.Jurisdiction),
			p.Type,
			string(p.Status),
			p.ExpirationDate,
			p.Owner,
		}, ","))
	}

	return []byte(strings.Join(lines, "\n"))
}

func ReportCSVName(kind entity.ReportKind, now time.Time) string {
	return fmt.Sprintf("FCS_%s_Report_%s.csv", strings.ToUpper(kind.String()[:1])+kind.String()[1:], entity.FormatDate(now))
}

func ConditionsCSV(conditions []entity.Condition) []byte {
	lines := make([]string, 0, len(conditions)+1)
	lines = append(lines, strings.Join(conditionCSVHeader, ","))

	for _, c := range conditions {
		lines = append(lines, strings.Join([]string{
			c.ID,
			c.PermitID,
			quote(c.Description),
			c.DueDate,
			string(c.Status),
			string(c.RiskLevel),
			quote(c.Owner),
		}, ","))
	}

	return []byte(strings.Join(lines, "\n"))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func PermitRecordName(p entity.Permit) string {
	return fmt.Sprintf("Permit_%s_Record.txt", p.ID)
}

// PermitRecord is the synthetic plain-text record offered when a permit has no document.
func PermitRecord(p entity.Permit, generatedAt time.Time) []byte {
	description := p.Description
	if description == "" {
		description = "No specific description provided."
	}

	var b strings.Builder

	b.WriteString("OFFICIAL PERMIT RECORD\n")
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "ID: %s\n", p.ID)
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Project: %s\n", p.Project)
	fmt.Fprintf(&b, "Jurisdiction: %s\n", p.Jurisdiction)
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	fmt.Fprintf(&b, "Expiration: %s\n", p.ExpirationDate)
	fmt.Fprintf(&b, "Owner: %s\n", p.Owner)
	b.WriteString("\nDescription:\n")
	b.WriteString(description)
	b.WriteString("\n\nTERMS AND CONDITIONS:\n")
	b.WriteString("1. This permit must be kept on site.\n")
	b.WriteString("2. Compliance with all environmental regulations is mandatory.\n")
	b.WriteString("3. Notify the jurisdiction 48 hours before commencement.\n")
	b.WriteString("\nGenerated by FCS AI Permit Tracker\n")
	b.WriteString(generatedAt.Format(time.DateTime))
	b.WriteString("\n")

	return []byte(b.String())
}

func DigestText(report entity.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", report.Title)
	fmt.Fprintf(&b, "Tasks due between %s and %s\n\n", report.Since, report.Until)

	if report.Empty {
		b.WriteString("No immediate tasks due this week. Good job!\n")
		return b.String()
	}

	for _, o := range report.Owners {
		fmt.Fprintf(&b, "%s: %d item(s)\n", o.Owner, o.Count)
	}

	b.WriteString("\n")

	for _, c := range report.Items {
		fmt.Fprintf(&b, "- [%s] %s (%s) due %s, owner %s\n", c.Status, c.Description, c.ID, c.DueDate, c.Owner)
	}

	return b.String()
}

func ReminderText(days int, conditions []entity.Condition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The following conditions are due within %d days:\n\n", days)

	for _, c := range conditions {
		evidence := ""
		if c.MissingEvidence() {
			evidence = ", evidence missing"
		}

		fmt.Fprintf(&b, "- %s (%s) due %s%s\n", c.Description, c.ID, c.DueDate, evidence)
	}

	return b.String()
}
