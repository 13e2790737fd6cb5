package leaderboardservice

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

func result(player sharedtypes.PlayerID, name string, category sharedtypes.Category, netPoints float64) scoringdomain.TournamentResult {
	return scoringdomain.TournamentResult{
		TournamentID: sharedtypes.NewTournamentID(),
		PlayerID:     player,
		PlayerName:   name,
		Category:     category,
		NetPoints:    netPoints,
		GrossPoints:  netPoints / 2,
	}
}

func TestAggregate_BestEightDrop(t *testing.T) {
	// Ten events with descending value; only the best eight count.
	var results []scoringdomain.TournamentResult
	for i := 0; i < 10; i++ {
		results = append(results, result(1, "Smith", sharedtypes.CategoryTour, float64(100-i*10)))
	}

	entries := Aggregate(results, sharedtypes.BasisNet, 8)
	require.Len(t, entries, 1)

	// 100+90+...+30 counted; 20 and 10 dropped.
	assert.Equal(t, 520.0, entries[0].OverallPoints)
	// Every event stays visible, sorted descending.
	require.Len(t, entries[0].EventPoints, 10)
	assert.Equal(t, 100.0, entries[0].EventPoints[0])
	assert.Equal(t, 10.0, entries[0].EventPoints[9])
	// Category totals include dropped events.
	assert.Equal(t, 550.0, entries[0].CategoryPoints[sharedtypes.CategoryTour])
}

func TestAggregate_FewerEventsThanCutoff(t *testing.T) {
	results := []scoringdomain.TournamentResult{
		result(1, "Smith", sharedtypes.CategoryTour, 100),
		result(1, "Smith", sharedtypes.CategoryMajor, 200),
	}

	entries := Aggregate(results, sharedtypes.BasisNet, 8)
	require.Len(t, entries, 1)
	assert.Equal(t, 300.0, entries[0].OverallPoints)
	assert.Equal(t, 100.0, entries[0].CategoryPoints[sharedtypes.CategoryTour])
	assert.Equal(t, 200.0, entries[0].CategoryPoints[sharedtypes.CategoryMajor])
}

func TestAggregate_RankingAndTies(t *testing.T) {
	results := []scoringdomain.TournamentResult{
		result(1, "Alpha", sharedtypes.CategoryTour, 300),
		result(2, "Bravo", sharedtypes.CategoryTour, 500),
		result(3, "Charlie", sharedtypes.CategoryTour, 300),
		result(4, "Delta", sharedtypes.CategoryTour, 100),
	}

	entries := Aggregate(results, sharedtypes.BasisNet, 8)
	require.Len(t, entries, 4)

	assert.Equal(t, "Bravo", entries[0].PlayerName)
	assert.Equal(t, 1, entries[0].Rank)

	// Alpha and Charlie tie on 300 and share rank 2, alphabetical order.
	assert.Equal(t, "Alpha", entries[1].PlayerName)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Charlie", entries[2].PlayerName)
	assert.Equal(t, 2, entries[2].Rank)

	// Delta resumes at rank 4, skipping rank 3.
	assert.Equal(t, "Delta", entries[3].PlayerName)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestAggregate_BasisSelectsPoints(t *testing.T) {
	results := []scoringdomain.TournamentResult{
		{PlayerID: 1, PlayerName: "Smith", Category: sharedtypes.CategoryTour, NetPoints: 500, GrossPoints: 100},
		{PlayerID: 2, PlayerName: "Jones", Category: sharedtypes.CategoryTour, NetPoints: 100, GrossPoints: 500},
	}

	net := Aggregate(results, sharedtypes.BasisNet, 8)
	gross := Aggregate(results, sharedtypes.BasisGross, 8)

	assert.Equal(t, "Smith", net[0].PlayerName)
	assert.Equal(t, "Jones", gross[0].PlayerName)
}

func TestAggregate_Deterministic(t *testing.T) {
	faker := gofakeit.New(11)
	var results []scoringdomain.TournamentResult
	for p := 1; p <= 40; p++ {
		name := faker.Name()
		for event := 0; event < faker.IntRange(1, 12); event++ {
			results = append(results, result(sharedtypes.PlayerID(p), name, sharedtypes.CategoryLeague, float64(faker.IntRange(0, 500))))
		}
	}

	first := Aggregate(results, sharedtypes.BasisNet, 8)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Aggregate(results, sharedtypes.BasisNet, 8)); diff != "" {
			t.Fatalf("aggregation is order-sensitive (-first +rerun):\n%s", diff)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	entries := Aggregate(nil, sharedtypes.BasisNet, 8)
	assert.Empty(t, entries)
}
