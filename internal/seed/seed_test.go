package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/internal/seed"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	d := seed.Default()

	require.Len(t, d.Permits, 4)
	require.Len(t, d.Conditions, 4)
	require.Len(t, d.Evidence, 1)
	require.Len(t, d.Milestones, 2)

	require.Equal(t, entity.Permit{
		ID:             "P-104",
		Project:        "Downtown Mixed Use",
		Name:           "Noise Variance Permit",
		Jurisdiction:   "City Planning Dept",
		Type:           "Noise",
		EffectiveDate:  "2024-02-01",
		ExpirationDate: "2024-08-01",
		Owner:          "David Chen",
		Status:         entity.StatusOverdue,
		Description:    "Allowance for night-time concrete pouring.",
		DocumentName:   "City_Noise_Variance_Approved.pdf",
	}, d.Permits[3])

	require.Equal(t, []string{"report", "air-quality"}, d.Evidence[0].Tags)
	require.Equal(t, "Sarah Jenkins", d.Profile.Name)
	require.Equal(t, entity.AlertSettings{Enabled: true, Remind30: true, Remind7: true, WeeklyDigest: true}, d.Alerts)

	d.Permits[0].Name = "changed"
	require.Equal(t, "Air Quality Construction Permit", seed.Default().Permits[0].Name)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	err := os.WriteFile(path, []byte("permits:\n  - id: P-1\n    name: One\n    status: Pending\n"), 0o600)
	require.NoError(t, err)

	d, err := seed.Load(path)
	require.NoError(t, err)
	require.Len(t, d.Permits, 1)
	require.Empty(t, d.Conditions)

	_, err = seed.Parse([]byte("permits:\n  - id: P-1\n    status: Done\n"))
	require.ErrorIs(t, err, entity.ErrIncorrectRequestBody)

	_, err = seed.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
