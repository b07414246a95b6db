package assistant_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samandr77/microservices/compliance/internal/assistant"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

var today = time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

func TestBuildSystemInstruction(t *testing.T) {
	t.Parallel()

	permits := []entity.Permit{
		{ID: "P-101", Name: "Air Quality Construction Permit", Status: entity.StatusOnTrack},
		{ID: "P-102", Name: "NPDES General Permit", Status: entity.StatusAtRisk},
	}
	conditions := []entity.Condition{
		{ID: "C-102-A", PermitID: "P-102", Description: "Conduct wet weather sampling", Status: entity.StatusOverdue},
	}

	got, err := assistant.BuildSystemInstruction(assistant.Context{
		Permits:    permits,
		Conditions: conditions,
		Today:      today,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(got, `You are an intelligent AI assistant for FirstCarbon Solutions (FCS) called "AI Permit Tracker".`))
	require.Contains(t, got, "Always assume today's date is 2024-05-15 for context on what is overdue.")
	require.Contains(t, got, `"At Risk" means a due date is approaching without evidence. "Overdue" means the date has passed.`)
	require.NotContains(t, got, "omitted")

	var decoded []entity.Permit

	err = yaml.Unmarshal([]byte(block(t, got, "PERMITS")), &decoded)
	require.NoError(t, err)
	require.Equal(t, permits, decoded)

	var decodedConditions []entity.Condition

	err = yaml.Unmarshal([]byte(block(t, got, "CONDITIONS")), &decodedConditions)
	require.NoError(t, err)
	require.Equal(t, conditions, decodedConditions)
}

func TestBuildSystemInstruction_Empty(t *testing.T) {
	t.Parallel()

	got, err := assistant.BuildSystemInstruction(assistant.Context{Today: today})
	require.NoError(t, err)
	require.Equal(t, "[]\n", block(t, got, "PERMITS"))
	require.Equal(t, "[]\n", block(t, got, "CONDITIONS"))
}

func TestBuildSystemInstruction_Truncates(t *testing.T) {
	t.Parallel()

	permits := make([]entity.Permit, 0, 200)
	for i := range 200 {
		status := entity.StatusCompliant
		if i == 150 {
			status = entity.StatusOverdue
		}

		permits = append(permits, entity.Permit{
			ID:          fmt.Sprintf("P-%03d", i),
			Name:        strings.Repeat("x", 64),
			Description: strings.Repeat("long description ", 8),
			Status:      status,
		})
	}

	got, err := assistant.BuildSystemInstruction(assistant.Context{
		Permits:  permits,
		Today:    today,
		MaxBytes: 4 << 10,
	})
	require.NoError(t, err)

	var decoded []entity.Permit

	err = yaml.Unmarshal([]byte(block(t, got, "PERMITS")), &decoded)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)
	require.Less(t, len(decoded), len(permits))
	require.Equal(t, "P-150", decoded[0].ID)
	require.Contains(t, got, fmt.Sprintf("Note: %d permits and 0 conditions were omitted", len(permits)-len(decoded)))
}

func block(t *testing.T, instruction, heading string) string {
	t.Helper()

	start := strings.Index(instruction, heading+":\n```yaml\n")
	require.GreaterOrEqual(t, start, 0)

	rest := instruction[start+len(heading)+len(":\n```yaml\n"):]
	end := strings.Index(rest, "```")
	require.GreaterOrEqual(t, end, 0)

	return rest[:end]
}
