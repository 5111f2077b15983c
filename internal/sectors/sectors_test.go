package sectors_test

import (
	"testing"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/sectors"

	"github.com/stretchr/testify/require"
)

func TestReferenceIsACopy(t *testing.T) {
	a := sectors.Reference()
	require.Len(t, a, 10)

	a[0].Name = "mutated"
	b := sectors.Reference()
	require.Equal(t, "Technology", b[0].Name)
}

func TestMergeOverlaysLivePerf(t *testing.T) {
	live := map[string]models.SectorPerf{
		"Information Technology": {Week1: 5.0, Month1: 9.0, Month3: 20.0},
		"Health Care":            {Week1: -0.3, Month1: 1.0, Month3: 2.5},
		"Unknown Label":          {Week1: 99},
	}

	merged := sectors.Merge(live)
	require.Len(t, merged, 10)

	byID := map[string]models.Sector{}
	for _, s := range merged {
		byID[s.ID] = s
	}

	require.True(t, byID["technology"].Live)
	require.Equal(t, 5.0, byID["technology"].Perf.Week1)
	require.True(t, byID["healthcare"].Live)
	require.Equal(t, 2.5, byID["healthcare"].Perf.Month3)

	// Sectors without a live match keep their baselines.
	require.False(t, byID["energy"].Live)
	require.Equal(t, -1.2, byID["energy"].Perf.Week1)
}

func TestMergeEmptyLiveKeepsBaselines(t *testing.T) {
	merged := sectors.Merge(nil)
	require.Equal(t, sectors.Reference(), merged)
	for _, s := range merged {
		require.False(t, s.Live)
		require.NotEmpty(t, s.Drivers)
	}
}
