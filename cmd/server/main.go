package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"yt-curator/internal/auth"
	"yt-curator/internal/blob"
	"yt-curator/internal/handlers"
	"yt-curator/internal/middleware"
	"yt-curator/internal/registry"
	"yt-curator/internal/render"
	"yt-curator/internal/sessions"
	"yt-curator/internal/syncstate"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newRouter wires the HTTP surface. Sync and channel routes require a
// session; auth, RSS and page routes are open. Every browser-facing
// route answers OPTIONS so the CORS preflight passes.
func newRouter(h *handlers.Handlers, verifier middleware.TokenVerifier) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.NewRateLimiterMiddleware(rate.Limit(10), 20).Middleware)

	r.HandleFunc("/auth", h.Auth).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/rss/{feed}", h.GetRSSFeed).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/pages/{feed}", h.GetPage).Methods(http.MethodGet, http.MethodOptions)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.RequireSession(verifier))
	protected.HandleFunc("/sync", h.GetSync).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/sync", h.PutSync).Methods(http.MethodPut)
	protected.HandleFunc("/sync", h.PostSync).Methods(http.MethodPost)
	protected.HandleFunc("/channels", h.Channels).Methods(
		http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions)

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	store := blob.NewClient(os.Getenv("BLOB_BASE_URL"))
	reg := registry.New(store, envOr("CHANNELS_BLOB_ID", "channels"))
	sync := syncstate.NewManager(store, envOr("SYNC_BLOB_ID", "sync"))

	var sessionStore sessions.Store = sessions.NewMemoryStore()
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := sessions.NewPostgresStore(databaseURL)
		if err != nil {
			log.Fatalf("could not open session store: %v", err)
		}
		sessionStore = pg
	} else {
		log.Println("DATABASE_URL not set, sessions are in-memory only")
	}
	authSvc := auth.NewService(store, envOr("ACCOUNTS_BLOB_ID", "accounts"), sessionStore)

	redisAddr := envOr("REDIS_ADDR", "127.0.0.1:6379")
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	h := handlers.New(reg, sync, authSvc, store,
		envOr("SNAPSHOT_BLOB_ID", "snapshot"), asynqClient, render.New())

	port := envOr("PORT", "8080")
	log.Printf("Starting server on :%s (commit: %s)", port, CommitSHA)
	if err := http.ListenAndServe(":"+port, newRouter(h, authSvc)); err != nil {
		log.Fatal(err)
	}
}
