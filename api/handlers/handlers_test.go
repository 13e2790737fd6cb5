package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/mmiles2012/golf-league/app/modules/leaderboard/application"
	leaderboardtypes "github.com/mmiles2012/golf-league/app/modules/leaderboard/domain"
	pointsconfigservice "github.com/mmiles2012/golf-league/app/modules/pointsconfig/application"
	pointsconfigdb "github.com/mmiles2012/golf-league/app/modules/pointsconfig/infrastructure/repositories"
	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

type fakeScoring struct {
	PreviewFunc func(ctx context.Context, req scoringservice.PreviewRequest) (scoringservice.PreviewResult, error)
	CommitFunc  func(ctx context.Context, req scoringservice.CommitRequest) (scoringdomain.Tournament, error)
}

func (f *fakeScoring) PreviewTournament(ctx context.Context, req scoringservice.PreviewRequest) (scoringservice.PreviewResult, error) {
	if f.PreviewFunc != nil {
		return f.PreviewFunc(ctx, req)
	}
	return scoringservice.PreviewResult{}, nil
}

func (f *fakeScoring) CommitTournament(ctx context.Context, req scoringservice.CommitRequest) (scoringdomain.Tournament, error) {
	if f.CommitFunc != nil {
		return f.CommitFunc(ctx, req)
	}
	return scoringdomain.Tournament{ID: req.ID, Name: req.Name}, nil
}

type fakeResultStore struct {
	results []scoringdomain.TournamentResult
}

func (f *fakeResultStore) CreateTournamentWithResults(context.Context, scoringdomain.Tournament, []scoringdomain.ScoreInput, []scoringdomain.TournamentResult) error {
	return nil
}

func (f *fakeResultStore) GetTournament(context.Context, sharedtypes.TournamentID) (*scoringdomain.Tournament, error) {
	return nil, nil
}

func (f *fakeResultStore) ListTournaments(context.Context, bool) ([]scoringdomain.Tournament, error) {
	return nil, nil
}

func (f *fakeResultStore) CountTournaments(context.Context, bool) (int, error) { return 0, nil }

func (f *fakeResultStore) GetScoreInputs(context.Context, sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error) {
	return nil, nil
}

func (f *fakeResultStore) ReplaceResults(context.Context, sharedtypes.TournamentID, []scoringdomain.TournamentResult) error {
	return nil
}

func (f *fakeResultStore) ListAllResults(context.Context) ([]scoringdomain.TournamentResult, error) {
	return f.results, nil
}

type fakeSnapshotStore struct{}

func (fakeSnapshotStore) GetSnapshot(context.Context, sharedtypes.Basis) ([]leaderboardtypes.LeaderboardEntry, error) {
	return nil, nil
}

func (fakeSnapshotStore) SaveSnapshot(context.Context, sharedtypes.Basis, []leaderboardtypes.LeaderboardEntry) error {
	return nil
}

type fakeTableStore struct {
	tables map[sharedtypes.Category]scoringdomain.PointsTable
}

func (f *fakeTableStore) GetTable(_ context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error) {
	table, ok := f.tables[category]
	if !ok {
		return scoringdomain.PointsTable{}, pointsconfigdb.ErrTableNotFound
	}
	return table, nil
}

func (f *fakeTableStore) ListTables(context.Context) ([]scoringdomain.PointsTable, error) {
	tables := make([]scoringdomain.PointsTable, 0, len(f.tables))
	for _, t := range f.tables {
		tables = append(tables, t)
	}
	return tables, nil
}

func (f *fakeTableStore) UpsertTable(_ context.Context, category sharedtypes.Category, values []float64) (scoringdomain.PointsTable, error) {
	table := scoringdomain.PointsTable{Category: category, Version: 2, Values: values}
	f.tables[category] = table
	return table, nil
}

func newTestHandlers(t *testing.T, scoring scoringservice.Service, results *fakeResultStore, tables *fakeTableStore) *Handlers {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	if results == nil {
		results = &fakeResultStore{}
	}
	if tables == nil {
		tables = &fakeTableStore{tables: map[sharedtypes.Category]scoringdomain.PointsTable{}}
	}
	leaderboard := leaderboardservice.NewService(results, fakeSnapshotStore{}, logger, 8)
	pointsConfig := pointsconfigservice.NewService(tables, nil, logger)
	return New(scoring, leaderboard, pointsConfig, nil, nil, logger)
}

func multipartUpload(t *testing.T, fields map[string]string, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	h := newTestHandlers(t, &fakeScoring{}, nil, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLeaderboard(t *testing.T) {
	net := 70.0
	results := &fakeResultStore{results: []scoringdomain.TournamentResult{
		{
			TournamentID: sharedtypes.NewTournamentID(),
			PlayerID:     sharedtypes.PlayerID(1),
			PlayerName:   "Smith",
			Category:     sharedtypes.CategoryTour,
			Position:     1,
			Net:          &net,
			NetPoints:    500,
			GrossPoints:  300,
		},
	}}
	h := newTestHandlers(t, &fakeScoring{}, results, nil)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard/net", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Basis   string                              `json:"basis"`
		Entries []leaderboardtypes.LeaderboardEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "net", resp.Basis)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Smith", resp.Entries[0].PlayerName)
	assert.Equal(t, 500.0, resp.Entries[0].OverallPoints)
}

func TestGetLeaderboard_UnknownBasis(t *testing.T) {
	h := newTestHandlers(t, &fakeScoring{}, nil, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard/stableford", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPointsTables(t *testing.T) {
	tables := &fakeTableStore{tables: map[sharedtypes.Category]scoringdomain.PointsTable{
		sharedtypes.CategoryTour: {Category: sharedtypes.CategoryTour, Version: 1, Values: []float64{500, 300}},
	}}
	h := newTestHandlers(t, &fakeScoring{}, nil, tables)
	router := h.Router()

	t.Run("get existing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/points-tables/tour", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var table scoringdomain.PointsTable
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
		assert.Equal(t, []float64{500, 300}, table.Values)
	})

	t.Run("unknown category is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/points-tables/bogus", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing table is a 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/points-tables/major", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update bumps the version", func(t *testing.T) {
		body := strings.NewReader(`{"values": [600, 400, 250]}`)
		req := httptest.NewRequest(http.MethodPut, "/points-tables/tour", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var table scoringdomain.PointsTable
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
		assert.Equal(t, int64(2), table.Version)
		assert.Equal(t, []float64{600, 400, 250}, table.Values)
	})

	t.Run("empty values rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/points-tables/tour", strings.NewReader(`{"values": []}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreviewTournament(t *testing.T) {
	var got scoringservice.PreviewRequest
	scoring := &fakeScoring{
		PreviewFunc: func(_ context.Context, req scoringservice.PreviewRequest) (scoringservice.PreviewResult, error) {
			got = req
			return scoringservice.PreviewResult{
				Summary: scoringservice.PreviewSummary{RowCount: len(req.Rows), PlayerCount: len(req.Rows)},
			}, nil
		},
	}
	h := newTestHandlers(t, scoring, nil, nil)

	csv := "Player,Position,Total,Handicap\nSmith,1,72,2\nJones,2,75,5\n"
	body, contentType := multipartUpload(t, map[string]string{
		"name":     "Spring Open",
		"category": "tour",
	}, "results.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/tournaments/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sharedtypes.CategoryTour, got.Category)
	assert.Equal(t, sharedtypes.ModeStroke, got.Mode)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Smith", got.Rows[0]["Player"])
}

func TestPreviewTournament_UnknownCategory(t *testing.T) {
	h := newTestHandlers(t, &fakeScoring{}, nil, nil)
	body, contentType := multipartUpload(t, map[string]string{"category": "junior"}, "r.csv", "Player\nSmith\n")
	req := httptest.NewRequest(http.MethodPost, "/tournaments/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommitTournament(t *testing.T) {
	csv := "Player,Position,Total,Handicap\nSmith,1,72,2\n"

	t.Run("valid upload commits", func(t *testing.T) {
		var got scoringservice.CommitRequest
		scoring := &fakeScoring{
			CommitFunc: func(_ context.Context, req scoringservice.CommitRequest) (scoringdomain.Tournament, error) {
				got = req
				return scoringdomain.Tournament{ID: req.ID, Name: req.Name}, nil
			},
		}
		h := newTestHandlers(t, scoring, nil, nil)

		body, contentType := multipartUpload(t, map[string]string{
			"name":     "Spring Open",
			"category": "tour",
		}, "results.csv", csv)
		req := httptest.NewRequest(http.MethodPost, "/tournaments", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Spring Open", got.Name)
		require.Len(t, got.Scores, 1)
		assert.Equal(t, "Smith", got.Scores[0].PlayerName)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		h := newTestHandlers(t, &fakeScoring{}, nil, nil)
		body, contentType := multipartUpload(t, map[string]string{"category": "tour"}, "results.csv", csv)
		req := httptest.NewRequest(http.MethodPost, "/tournaments", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unresolved team entries are a 422", func(t *testing.T) {
		scoring := &fakeScoring{
			CommitFunc: func(context.Context, scoringservice.CommitRequest) (scoringdomain.Tournament, error) {
				return scoringdomain.Tournament{}, scoringdomain.ErrUnresolvedTeamEntry
			},
		}
		h := newTestHandlers(t, scoring, nil, nil)
		body, contentType := multipartUpload(t, map[string]string{
			"name":     "Scramble",
			"category": "league",
		}, "results.csv", csv)
		req := httptest.NewRequest(http.MethodPost, "/tournaments", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestDetectTeams(t *testing.T) {
	h := newTestHandlers(t, &fakeScoring{}, nil, nil)
	csv := "Player,Position,Total,Handicap\nSmith / Jones,1,68,0\nBrown,2,71,3\n"
	body, contentType := multipartUpload(t, map[string]string{"category": "league"}, "results.csv", csv)
	req := httptest.NewRequest(http.MethodPost, "/tournaments/teams", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Teams []scoringdomain.TeamEntry `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Teams, 1)
	assert.Equal(t, "Smith / Jones", resp.Teams[0].OriginalLabel)
	assert.Equal(t, []string{"Smith", "Jones"}, resp.Teams[0].CandidateNames)
}
