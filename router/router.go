// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/url"

	"github.com/danielhkuo/faceoff/auth"
	"github.com/danielhkuo/faceoff/cliparse"
	"github.com/danielhkuo/faceoff/handlers"
	"github.com/danielhkuo/faceoff/media"
	"github.com/danielhkuo/faceoff/middleware"
	"github.com/danielhkuo/faceoff/poll"
	"github.com/danielhkuo/faceoff/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	accessIssuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), auth.TypeAccess, auth.AccessTTL)
	refreshIssuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), auth.TypeRefresh, auth.RefreshTTL)

	serveRoot, _ := url.Parse(cfg.MediaBaseURL)
	mediaStore := media.NewStore(media.Config{Root: cfg.UploadDir, ServeRoot: serveRoot}, st)

	svc := poll.NewService(st)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, accessIssuer, refreshIssuer)
	pollHandler := handlers.NewPollHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)
	mediaHandler := handlers.NewMediaHandler(mediaStore)

	withAuth := middleware.RequireAuth(accessIssuer)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity (public)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/refresh", middleware.WithLogging(authHandler.Refresh))

	// Poll lifecycle
	mux.HandleFunc("POST /polls", middleware.WithLogging(withAuth(pollHandler.CreatePoll)))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(withAuth(pollHandler.UpdatePoll)))
	mux.HandleFunc("POST /polls/{id}/close", middleware.WithLogging(withAuth(pollHandler.ClosePoll)))

	// Voting
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(withAuth(votingHandler.Vote)))

	// Results (public, sealed until closed)
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Media uploads and retrieval
	mux.HandleFunc("POST /media/upload", middleware.WithLogging(withAuth(mediaHandler.Upload)))
	mediaFiles := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.UploadDir)))
	mux.HandleFunc("GET /media/{file}", middleware.WithLogging(mediaFiles.ServeHTTP))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("faceoff API v1"))
	})

	return mux
}
