package main

import (
	"net/http"
	"strings"

	"bingelist/internal/app/compare"
	"bingelist/internal/app/lists"
	"bingelist/internal/app/messages"
	"bingelist/internal/app/movies"
	"bingelist/internal/app/reviews"
	"bingelist/internal/app/search"
	"bingelist/internal/app/titles"
	"bingelist/internal/app/users"
	"bingelist/internal/httpapi"
	"bingelist/internal/metadata"
	"bingelist/internal/store"
	"bingelist/internal/tmdb"
	"bingelist/shared/go/config"
	"bingelist/shared/go/middleware"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) http.Handler {
	tmdbClient := tmdb.NewClient(tmdb.Config{
		APIKey:         cfg.TMDB.APIKey,
		BaseURL:        cfg.TMDB.BaseURL,
		RequestTimeout: cfg.TMDB.RequestTimeout,
		MaxRetries:     cfg.TMDB.MaxRetries,
		RetryBaseDelay: cfg.TMDB.RetryBaseDelay,
	})
	fetcher := metadata.New(dataStore, tmdbClient)

	userSvc := users.New(dataStore)
	listSvc := lists.New(dataStore)
	movieSvc := movies.New(dataStore)
	reviewSvc := reviews.New(dataStore)
	messageSvc := messages.New(dataStore)
	searchSvc := search.New(fetcher, dataStore, tmdbClient)
	titleSvc := titles.New(fetcher, dataStore, tmdbClient)
	compareSvc := compare.New(dataStore)

	api := httpapi.New(userSvc, listSvc, movieSvc, reviewSvc, messageSvc, searchSvc, titleSvc, compareSvc)

	handler := api.Routes()
	handler = middleware.Identity([]byte(cfg.Security.TokenSecret))(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return withCORS(cfg.CORS.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
