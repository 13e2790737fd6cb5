package leaderboardservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	leaderboardtypes "github.com/mmiles2012/golf-league/app/modules/leaderboard/domain"
)

const chartTopN = 10

// RenderStandingsChart produces a PNG bar chart of the leading players'
// overall points.
func RenderStandingsChart(entries []leaderboardtypes.LeaderboardEntry, title string) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(title)
	}

	top := entries
	if len(top) > chartTopN {
		top = top[:chartTopN]
	}

	bars := make([]chart.Value, 0, len(top))
	for _, e := range top {
		bars = append(bars, chart.Value{
			Label: e.PlayerName,
			Value: e.OverallPoints,
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   420,
		BarWidth: 56,
		Bars:     bars,
	}

	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("render standings chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(title string) ([]byte, error) {
	graph := chart.BarChart{
		Title:    title + " (no results yet)",
		Width:    400,
		Height:   200,
		BarWidth: 40,
		Bars:     []chart.Value{{Label: "-", Value: 0.001}},
	}
	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
