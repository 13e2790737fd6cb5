package scoringservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

func TestResolveScore(t *testing.T) {
	tests := []struct {
		name      string
		input     scoringdomain.ScoreInput
		mode      sharedtypes.ScoringMode
		wantGross float64
		wantNet   float64
		wantErr   error
	}{
		{
			name: "stroke subtracts handicap",
			input: scoringdomain.ScoreInput{
				PlayerName: "Smith",
				RawTotal:   sharedtypes.Float64Ptr(85),
				Handicap:   sharedtypes.Float64Ptr(10),
			},
			mode:      sharedtypes.ModeStroke,
			wantGross: 85,
			wantNet:   75,
		},
		{
			name: "stroke with plus marker adds handicap",
			input: scoringdomain.ScoreInput{
				PlayerName:   "Scratch",
				RawTotal:     sharedtypes.Float64Ptr(68),
				Handicap:     sharedtypes.Float64Ptr(2),
				HandicapPlus: true,
			},
			mode:      sharedtypes.ModeStroke,
			wantGross: 68,
			wantNet:   70,
		},
		{
			name: "stroke with negative handicap",
			input: scoringdomain.ScoreInput{
				PlayerName: "Pro",
				RawTotal:   sharedtypes.Float64Ptr(70),
				Handicap:   sharedtypes.Float64Ptr(-2),
			},
			mode:      sharedtypes.ModeStroke,
			wantGross: 70,
			wantNet:   72,
		},
		{
			name: "stroke net reconstructs gross",
			input: scoringdomain.ScoreInput{
				PlayerName: "Jones",
				RawTotal:   sharedtypes.Float64Ptr(70),
				Handicap:   sharedtypes.Float64Ptr(5),
			},
			mode:      sharedtypes.ModeStrokeNet,
			wantGross: 75,
			wantNet:   70,
		},
		{
			name: "stroke net always adds even when zero",
			input: scoringdomain.ScoreInput{
				PlayerName: "Even",
				RawTotal:   sharedtypes.Float64Ptr(72),
				Handicap:   sharedtypes.Float64Ptr(0),
			},
			mode:      sharedtypes.ModeStrokeNet,
			wantGross: 72,
			wantNet:   72,
		},
		{
			name: "missing total fails",
			input: scoringdomain.ScoreInput{
				PlayerName: "NoScore",
				Handicap:   sharedtypes.Float64Ptr(10),
			},
			mode:    sharedtypes.ModeStroke,
			wantErr: scoringdomain.ErrIncompleteScore,
		},
		{
			name: "missing handicap fails",
			input: scoringdomain.ScoreInput{
				PlayerName: "NoHcp",
				RawTotal:   sharedtypes.Float64Ptr(85),
			},
			mode:    sharedtypes.ModeStrokeNet,
			wantErr: scoringdomain.ErrIncompleteScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveScore(tt.input, tt.mode)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got.Gross)
			require.NotNil(t, got.Net)
			assert.Equal(t, tt.wantGross, *got.Gross)
			assert.Equal(t, tt.wantNet, *got.Net)
			assert.Equal(t, tt.input.PlayerName, got.PlayerName)
		})
	}
}

func TestResolveScore_PreScoredCopiesThrough(t *testing.T) {
	input := scoringdomain.ScoreInput{
		PlayerName: "Kim",
		Position:   2,
		Gross:      sharedtypes.Float64Ptr(80),
		Net:        sharedtypes.Float64Ptr(72),
	}

	got, err := ResolveScore(input, sharedtypes.ModePreScored)
	require.NoError(t, err)
	assert.Equal(t, input.Gross, got.Gross)
	assert.Equal(t, input.Net, got.Net)

	// Pre-scored rows may carry only one of the two scores.
	partial := scoringdomain.ScoreInput{PlayerName: "NetOnly", Net: sharedtypes.Float64Ptr(70)}
	got, err = ResolveScore(partial, sharedtypes.ModePreScored)
	require.NoError(t, err)
	assert.Nil(t, got.Gross)
	require.NotNil(t, got.Net)
}

func TestResolveScores_IsolatesFailures(t *testing.T) {
	inputs := []scoringdomain.ScoreInput{
		{PlayerName: "Good", RawTotal: sharedtypes.Float64Ptr(80), Handicap: sharedtypes.Float64Ptr(8)},
		{PlayerName: "Bad"},
		{PlayerName: "AlsoGood", RawTotal: sharedtypes.Float64Ptr(77), Handicap: sharedtypes.Float64Ptr(5)},
	}

	resolved, errs := ResolveScores(inputs, sharedtypes.ModeStroke)
	require.Len(t, resolved, 2)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], scoringdomain.ErrIncompleteScore)
	assert.ErrorContains(t, errs[0], "Bad")
}
