package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream responde "<nome> <método> <path>"
func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, name+" "+r.Method+" "+r.URL.RequestURI())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_RoutesToUpstreams(t *testing.T) {
	bets, matches := upstream(t, "bet"), upstream(t, "match")
	h, err := Router(bets.URL, matches.URL)
	require.NoError(t, err)
	gw := httptest.NewServer(h)
	defer gw.Close()

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/bets", "bet GET /bets"},
		{http.MethodGet, "/api/bets/abc", "bet GET /bets/abc"},
		{http.MethodPost, "/api/bets", "bet POST /bets"},
		{http.MethodGet, "/api/matches?home=mandante-1", "match GET /matches?home=mandante-1"},
		{http.MethodPut, "/api/matches/4", "match PUT /matches/4"},
		{http.MethodPost, "/api/matches/4/cancel", "match POST /matches/4/cancel"},
		{http.MethodGet, "/api/teams/1", "match GET /teams/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, gw.URL+tt.path, nil)
			require.NoError(t, err)
			res, err := gw.Client().Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
			assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	h, err := Router("http://localhost:1", "http://localhost:2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/odds", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Preflight(t *testing.T) {
	h, err := Router("http://localhost:1", "http://localhost:2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/bets", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_InvalidUpstream(t *testing.T) {
	_, err := Router("not a url", "http://localhost:2")
	assert.Error(t, err)
}
