package main

import (
	stdctx "context"
	"fmt"
	"gator-find/internal/config"
	"gator-find/internal/database"
	"gator-find/internal/engine"
	"gator-find/internal/handlers"
	"gator-find/internal/middleware"
	"gator-find/internal/utils"
	"gator-find/internal/websocket"
	"log"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	// Connect to MongoDB
	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	// Start the WebSocket hub for the live match feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize actor system and engine
	system := actor.NewActorSystem()
	gatorEngine := engine.NewEngine(system, metrics, db, cfg, hub)

	// Create server instance
	server := handlers.NewServer(system, system.Root, gatorEngine, metrics, hub)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	// route wires a handler with CORS, JWT auth and the request counter
	route := func(mux *http.ServeMux, path string, handler http.HandlerFunc) {
		wrapped := middleware.ApplyJWTMiddleware(handler, path)
		wrapped = middleware.ApplyCORS(wrapped, corsConfig)
		if cfg.Server.MetricsEnabled {
			wrapped = countRequests(metrics, wrapped)
		}
		mux.HandleFunc(path, wrapped)
	}

	// adminRoute additionally requires an admin token
	adminRoute := func(mux *http.ServeMux, path string, handler http.HandlerFunc) {
		wrapped := middleware.RequireAdmin(handler)
		wrapped = middleware.ApplyCORS(wrapped, corsConfig)
		if cfg.Server.MetricsEnabled {
			wrapped = countRequests(metrics, wrapped)
		}
		mux.HandleFunc(path, wrapped)
	}

	mux := http.NewServeMux()

	route(mux, "/health", server.HandleHealth())
	route(mux, "/user/register", server.HandleUserRegistration())
	route(mux, "/user/login", server.HandleUserLogin())
	route(mux, "/user/profile", server.HandleUserProfile())
	route(mux, "/user/bookmark", server.HandleBookmark())
	route(mux, "/leaderboard", server.HandleLeaderboard(cfg.Leaderboard.Limit))

	route(mux, "/post", server.HandlePost())
	route(mux, "/post/resolve", server.HandleResolvePost())
	route(mux, "/post/archive", server.HandleArchivePost())
	route(mux, "/post/recent", server.HandleRecentPosts())

	route(mux, "/comment", server.HandleComment())
	route(mux, "/comment/post", server.HandlePostComments())

	route(mux, "/report", server.HandleReport())
	adminRoute(mux, "/report/list", server.HandleListReports())
	adminRoute(mux, "/report/resolve", server.HandleResolveReport())

	adminRoute(mux, "/admin/matches/run", server.HandleRunMatching())
	adminRoute(mux, "/admin/matches", server.HandleListMatches())
	adminRoute(mux, "/admin/matches/notify", server.HandleNotifyMatch())

	// WebSocket authenticates via query token inside the handler
	mux.HandleFunc("/ws", server.HandleWebSocket())

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func countRequests(metrics *utils.MetricsCollector, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.IncrementRequests()
		next(w, r)
	}
}
