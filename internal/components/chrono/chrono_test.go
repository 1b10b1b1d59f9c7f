package chrono

import (
	"fanduel-client/internal/components/telemetry"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardTime(t *testing.T) {
	now := NewStandardTime().Now()
	require.Equal(t, Eastern(), now.Location())
}

func TestStandardCron(t *testing.T) {
	cron := NewStandardCron(telemetry.SetupForTesting(t))
	defer cron.Stop()

	require.NoError(t, cron.Cron("*/15 * * * *", func() {}))
	require.NoError(t, cron.Cron("@every 1h", func() {}))
	require.Error(t, cron.Cron("not a schedule", func() {}))
	require.Error(t, cron.Cron("*/15 * * * * *", func() {}))
}
