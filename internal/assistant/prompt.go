// Package assistant assembles the context handed to the completion provider
// and keeps per-session chat transcripts.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const DefaultMaxContextBytes = 64 << 10

const role = `You are an intelligent AI assistant for FirstCarbon Solutions (FCS) called "AI Permit Tracker".
Your role is to help Project Managers and Compliance Staff track environmental permits, milestones, and conditions.`

const guidelines = `Guidelines:
1. Be professional, concise, and helpful.
2. When asked about specific permits, refer to them by Name or ID.
3. If asked to draft a digest or report, format it clearly with Markdown headers and bullet points.
4. "At Risk" means a due date is approaching without evidence. "Overdue" means the date has passed.
5. Always assume today's date is %s for context on what is overdue.`

type Context struct {
	Permits    []entity.Permit
	Conditions []entity.Condition
	Today      time.Time
	// MaxBytes caps the serialized records. Zero disables the cap.
	MaxBytes int
}

// BuildSystemInstruction renders the role, the current records as YAML blocks
// and the interpretation rules. Records that do not fit MaxBytes are dropped,
// compliant ones first, and the omission is stated in the instruction.
func BuildSystemInstruction(c Context) (string, error) {
	permits, err := marshalEach(rankPermits(c.Permits))
	if err != nil {
		return "", fmt.Errorf("marshal permits: %w", err)
	}

	conditions, err := marshalEach(rankConditions(c.Conditions))
	if err != nil {
		return "", fmt.Errorf("marshal conditions: %w", err)
	}

	permitBudget, conditionBudget := -1, -1

	if c.MaxBytes > 0 {
		permitBudget = c.MaxBytes / 2
		used := fit(permits, permitBudget)
		conditionBudget = c.MaxBytes - size(permits[:used])
	}

	keptPermits := permits[:fit(permits, permitBudget)]
	keptConditions := conditions[:fit(conditions, conditionBudget)]

	var b strings.Builder

	b.WriteString(role)
	b.WriteString("\n\nHere is the current database of permits and conditions in YAML format:\n\n")
	writeBlock(&b, "PERMITS", keptPermits)
	writeBlock(&b, "CONDITIONS", keptConditions)

	omittedPermits := len(permits) - len(keptPermits)
	omittedConditions := len(conditions) - len(keptConditions)

	if omittedPermits > 0 || omittedConditions > 0 {
		fmt.Fprintf(&b, "Note: %d permits and %d conditions were omitted to fit the context limit. "+
			"The omitted records are the ones already Compliant or listed last.\n\n", omittedPermits, omittedConditions)
	}

	fmt.Fprintf(&b, guidelines, entity.FormatDate(c.Today))
	b.WriteString("\n")

	return b.String(), nil
}

func writeBlock(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading)
	b.WriteString(":\n```yaml\n")

	if len(items) == 0 {
		b.WriteString("[]\n")
	}

	for _, item := range items {
		b.WriteString(item)
	}

	b.WriteString("```\n\n")
}

func marshalEach[T any](items []T) ([]string, error) {
	out := make([]string, 0, len(items))

	for _, v := range items {
		data, err := yaml.Marshal([]T{v})
		if err != nil {
			return nil, err
		}

		out = append(out, string(data))
	}

	return out, nil
}

// fit returns how many leading items fit in budget bytes; a negative budget fits all.
func fit(items []string, budget int) int {
	if budget < 0 {
		return len(items)
	}

	total := 0

	for i, item := range items {
		total += len(item)
		if total > budget {
			return i
		}
	}

	return len(items)
}

func size(items []string) int {
	total := 0
	for _, item := range items {
		total += len(item)
	}

	return total
}

func rankPermits(permits []entity.Permit) []entity.Permit {
	return rank(permits, func(p entity.Permit) bool { return p.Status != entity.StatusCompliant })
}

func rankConditions(conditions []entity.Condition) []entity.Condition {
	return rank(conditions, func(c entity.Condition) bool {
		return c.Status != entity.StatusCompliant || c.MissingEvidence()
	})
}

// rank moves the items matching first to the front, keeping relative order.
func rank[T any](items []T, first func(T) bool) []T {
	out := make([]T, 0, len(items))
	rest := make([]T, 0)

	for _, v := range items {
		if first(v) {
			out = append(out, v)
		} else {
			rest = append(rest, v)
		}
	}

	return append(out, rest...)
}
