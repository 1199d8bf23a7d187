package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
)

func rp(to string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(to)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream %q", to)
	}
	return httputil.NewSingleHostReverseProxy(u), nil
}

// Router monta as rotas públicas:
//
//	/api/bets/*    -> bet-service   (/bets/*)
//	/api/matches/* -> match-service (/matches/*)
//	/api/teams/*   -> match-service (/teams/*)
func Router(betURL, matchURL string) (http.Handler, error) {
	bet, err := rp(betURL)
	if err != nil {
		return nil, err
	}
	matches, err := rp(matchURL)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/bets", http.StripPrefix("/api", bet))
	mux.Handle("/api/bets/", http.StripPrefix("/api", bet))
	mux.Handle("/api/matches", http.StripPrefix("/api", matches))
	mux.Handle("/api/matches/", http.StripPrefix("/api", matches))
	mux.Handle("/api/teams", http.StripPrefix("/api", matches))
	mux.Handle("/api/teams/", http.StripPrefix("/api", matches))

	return WithCORS(mux), nil
}

func WithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
