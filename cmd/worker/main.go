package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"yt-curator/internal/blob"
	"yt-curator/internal/fetch"
	"yt-curator/internal/registry"
	"yt-curator/internal/syncstate"
	"yt-curator/internal/worker"
	"yt-curator/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newSource() fetch.VideoSource {
	switch envOr("VIDEO_SOURCE", "rss") {
	case "ytdlp":
		return &fetch.YtDlpSource{}
	default:
		return fetch.NewRSSSource()
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	redisAddr := envOr("REDIS_ADDR", "127.0.0.1:6379")

	limit, err := strconv.Atoi(envOr("FETCH_LIMIT", "1"))
	if err != nil || limit < 1 {
		limit = 1
	}

	store := blob.NewClient(os.Getenv("BLOB_BASE_URL"))
	reg := registry.New(store, envOr("CHANNELS_BLOB_ID", "channels"))
	pipeline := fetch.NewPipeline(newSource(), limit, fetch.DefaultDelay)
	sync := syncstate.NewManager(store, envOr("SYNC_BLOB_ID", "sync"))
	saver := syncstate.NewSaver(sync, syncstate.DefaultQuietPeriod)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 1, // Process one task at a time to be gentle with YouTube
			Queues: map[string]int{
				"high":    2,
				"default": 1,
			},
			// Custom retry delay function for exponential backoff
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				// Calculate exponential backoff delay
				delay := time.Duration(5*60*1000) * time.Millisecond        // 5 minutes base
				maxDelay := time.Duration(24*60*60*1000) * time.Millisecond // 24 hours max

				// Exponential backoff: 5min, 10min, 20min, 40min, 80min, etc.
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}

				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(reg, pipeline, store,
		envOr("SNAPSHOT_BLOB_ID", "snapshot"), sync, saver)

	mux.HandleFunc(tasks.TypeFetchChannel, taskHandler.HandleFetchChannelTask)
	mux.HandleFunc(tasks.TypeFetchAllChannels, taskHandler.HandleFetchAllChannelsTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
