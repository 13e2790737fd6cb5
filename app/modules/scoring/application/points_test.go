package scoringservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

func netScore(name string, net float64) scoringdomain.ResolvedScore {
	return scoringdomain.ResolvedScore{
		PlayerName: name,
		Net:        sharedtypes.Float64Ptr(net),
		Gross:      sharedtypes.Float64Ptr(net + 10),
	}
}

func TestAssignPoints(t *testing.T) {
	table := scoringdomain.PointsTable{
		Category: sharedtypes.CategoryTour,
		Values:   []float64{500, 300, 190, 135},
	}

	t.Run("distinct scores pay the table in order", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			netScore("Third", 74),
			netScore("First", 70),
			netScore("Second", 72),
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisNet)
		require.Len(t, ranked, 3)
		assert.Equal(t, "First", ranked[0].PlayerName)
		assert.Equal(t, 500.0, ranked[0].Points)
		assert.Equal(t, "1", ranked[0].DisplayPosition)
		assert.Equal(t, "Second", ranked[1].PlayerName)
		assert.Equal(t, 300.0, ranked[1].Points)
		assert.Equal(t, "Third", ranked[2].PlayerName)
		assert.Equal(t, 190.0, ranked[2].Points)
	})

	t.Run("tie group gets best rank value and advances past the group", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			netScore("Winner", 68),
			netScore("TiedA", 71),
			netScore("TiedB", 71),
			netScore("Fourth", 75),
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisNet)
		require.Len(t, ranked, 4)

		assert.Equal(t, 500.0, ranked[0].Points)
		assert.False(t, ranked[0].Tied)

		// Both tied players take the rank-2 value, not an average.
		for _, r := range ranked[1:3] {
			assert.Equal(t, 300.0, r.Points)
			assert.Equal(t, "T2", r.DisplayPosition)
			assert.True(t, r.Tied)
			assert.Equal(t, 2, r.Rank)
		}

		// The player after the tie resumes at rank 4, skipping rank 3.
		assert.Equal(t, 4, ranked[3].Rank)
		assert.Equal(t, 135.0, ranked[3].Points)
		assert.Equal(t, "4", ranked[3].DisplayPosition)
	})

	t.Run("points never increase down the ranking", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			netScore("A", 70), netScore("B", 70), netScore("C", 72),
			netScore("D", 72), netScore("E", 73), netScore("F", 80),
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisNet)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Points, ranked[i].Points,
				"points must be non-increasing down the ranking")
		}
	})

	t.Run("ranks beyond the table pay zero", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			netScore("P1", 70), netScore("P2", 71), netScore("P3", 72),
			netScore("P4", 73), netScore("P5", 74), netScore("P6", 75),
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisNet)
		assert.Equal(t, 135.0, ranked[3].Points)
		assert.Equal(t, 0.0, ranked[4].Points)
		assert.Equal(t, 0.0, ranked[5].Points)
	})

	t.Run("missing basis score sorts last and earns nothing", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			{PlayerName: "NoNet", Gross: sharedtypes.Float64Ptr(80)},
			netScore("Scored", 72),
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisNet)
		require.Len(t, ranked, 2)
		assert.Equal(t, "Scored", ranked[0].PlayerName)
		assert.Equal(t, "NoNet", ranked[1].PlayerName)
		assert.Equal(t, 0.0, ranked[1].Points)
		assert.False(t, ranked[1].Tied)
	})

	t.Run("gross basis ranks on gross", func(t *testing.T) {
		scores := []scoringdomain.ResolvedScore{
			{PlayerName: "LowGross", Gross: sharedtypes.Float64Ptr(72), Net: sharedtypes.Float64Ptr(71)},
			{PlayerName: "LowNet", Gross: sharedtypes.Float64Ptr(78), Net: sharedtypes.Float64Ptr(66)},
		}

		ranked := AssignPoints(scores, table, sharedtypes.BasisGross)
		assert.Equal(t, "LowGross", ranked[0].PlayerName)
		assert.Equal(t, 500.0, ranked[0].Points)
	})
}

func TestPointsTable_PointsFor(t *testing.T) {
	table := scoringdomain.PointsTable{Values: []float64{500, 300, 190}}

	assert.Equal(t, 500.0, table.PointsFor(1))
	assert.Equal(t, 190.0, table.PointsFor(3))
	assert.Equal(t, 0.0, table.PointsFor(4))
	assert.Equal(t, 0.0, table.PointsFor(0))
	assert.Equal(t, 0.0, table.PointsFor(-1))
}
