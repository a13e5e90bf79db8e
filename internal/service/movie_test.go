package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelmates/backend/internal/tmdb"
)

func newMovieService(t *testing.T, handler http.Handler) *MovieService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	client := tmdb.NewClient("test-key", srv.URL, "https://image.tmdb.org/t/p")
	return NewMovieService(client, nil, log)
}

func TestSearchMoviesRejectsShortQuery(t *testing.T) {
	calls := 0
	svc := newMovieService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := svc.SearchMovies(context.Background(), "in", 1)
	assert.ErrorIs(t, err, ErrQueryTooShort)
	assert.Zero(t, calls, "short queries must not reach TMDB")

	_, err = svc.SearchMovies(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrQueryTooShort)
}

func TestSearchMoviesPassesThrough(t *testing.T) {
	svc := newMovieService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "inception", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode(tmdb.SearchResponse{
			Page:    1,
			Results: []tmdb.Movie{{ID: 27205, Title: "Inception"}},
		})
	}))

	resp, err := svc.SearchMovies(context.Background(), "inception", 0)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Inception", resp.Results[0].Title)
}

func TestGetTrendingUpstreamError(t *testing.T) {
	svc := newMovieService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := svc.GetTrending(context.Background(), "week")
	assert.Error(t, err)
}

func TestGetMovieDetails(t *testing.T) {
	svc := newMovieService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tmdb.MovieDetails{ID: 550, Title: "Fight Club"})
	}))

	details, err := svc.GetMovieDetails(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", details.Title)
}
