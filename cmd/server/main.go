package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/framecraft/framecraft/internal/auth"
	"github.com/framecraft/framecraft/internal/config"
	"github.com/framecraft/framecraft/internal/db"
	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/engine"
	mw "github.com/framecraft/framecraft/internal/middleware"
	"github.com/framecraft/framecraft/internal/preview"
	"github.com/framecraft/framecraft/internal/storyboard"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	queries := db.New(pool)

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	storyboardService := storyboard.NewService(queries)
	storyboardHandler := storyboard.NewHandler(storyboardService)

	// Scene loader for the preview hub
	sceneLoader := func(ctx context.Context, storyboardID string) (*engine.Scene, error) {
		snap, err := queries.GetLatestSnapshot(ctx, storyboardID)
		if err != nil {
			return nil, err
		}
		doc, err := document.Load(snap.Document)
		if err != nil {
			return nil, err
		}
		return engine.Build(doc)
	}

	hub := preview.NewHub(sceneLoader)
	go hub.Run()

	storyboardHandler.OnSnapshotSaved = hub.Invalidate

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.RequireUser)

	api.HandleFunc("/storyboards", storyboardHandler.List).Methods("GET")
	api.HandleFunc("/storyboards", storyboardHandler.Create).Methods("POST")
	api.HandleFunc("/storyboards/{storyboardId}", storyboardHandler.Get).Methods("GET")
	api.HandleFunc("/storyboards/{storyboardId}", storyboardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/storyboards/{storyboardId}/snapshots/latest", storyboardHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/storyboards/{storyboardId}/snapshots", storyboardHandler.SaveSnapshot).Methods("POST")
	api.HandleFunc("/storyboards/{storyboardId}/resolve", storyboardHandler.Resolve).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/storyboard/{storyboardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, storyboardService, originPatterns(cfg.AllowedOrigins))
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *preview.Hub, authSvc *auth.Service, sbSvc *storyboard.Service, origins []string) {
	vars := mux.Vars(r)
	storyboardID := vars["storyboardId"]

	token := auth.BearerToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Tokens outlive account deletion; confirm the subject still exists.
	if _, err := authSvc.Account(r.Context(), userID); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := sbSvc.Get(r.Context(), storyboardID, userID); err != nil {
		http.Error(w, "storyboard not accessible", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := preview.NewClient(hub, conn, userID, storyboardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins, which is the
// form websocket.AcceptOptions expects.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
