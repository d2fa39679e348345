package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/groundlink/api"
	"github.com/banshee-data/groundlink/internal/config"
	"github.com/banshee-data/groundlink/internal/fsutil"
	"github.com/banshee-data/groundlink/internal/mapwatch"
	"github.com/banshee-data/groundlink/internal/render"
	"github.com/banshee-data/groundlink/internal/telemetry"
	"github.com/banshee-data/groundlink/internal/viewerhub"
	"github.com/banshee-data/groundlink/internal/wire"
)

var (
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	configPath = flag.String("config", "", "Path to station config JSON")
	dbPath     = flag.String("db", "", "Path to sqlite telemetry database (overrides config)")
	mapDir     = flag.String("map-dir", "", "Directory watched for robot message files (overrides config)")
	renderDir  = flag.String("render-dir", "", "Directory for rendered heightmap PNGs (overrides config)")
	devMode    = flag.Bool("dev", false, "Run in dev mode: log every decoded message")
)

// shutdownTimeout bounds how long the HTTP server may take to drain on exit.
const shutdownTimeout = 5 * time.Second

func main() {
	flag.Parse()

	cfg := &config.StationConfig{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	listenAddr := cfg.GetListenAddr()
	if *listen != "" {
		listenAddr = *listen
	}
	watchDir := cfg.GetMapDir()
	if *mapDir != "" {
		watchDir = *mapDir
	}
	databasePath := cfg.GetDatabasePath()
	if *dbPath != "" {
		databasePath = *dbPath
	}
	renderOut := cfg.GetRenderDir()
	if *renderDir != "" {
		renderOut = *renderDir
	}

	store, err := telemetry.NewStore(databasePath)
	if err != nil {
		log.Fatalf("failed to open telemetry store: %v", err)
	}
	defer store.Close()

	renderer, err := render.NewRenderer(renderOut)
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	hub := viewerhub.NewHub()
	defer hub.Close()

	tracker := api.NewStateTracker()

	// Every decoded message flows through one sink: fold it into the state
	// snapshot, persist what has history, render heightmaps, then push to
	// connected viewers.
	sink := func(path string, msg wire.Message) {
		if *devMode {
			log.Printf("decoded %v (%d byte payload) from %s", msg.Header().Type, msg.Header().Length, path)
		}
		tracker.Observe(msg)

		if err := store.Record(msg); err != nil {
			log.Printf("failed to record %v message: %v", msg.Header().Type, err)
		}

		if hm, ok := msg.(*wire.Heightmap); ok {
			if out, err := renderer.Render(hm); err != nil {
				log.Printf("failed to render heightmap from %s: %v", path, err)
			} else {
				log.Printf("rendered heightmap %s -> %s", path, out)
			}
		}

		hub.Publish(msg)
	}
	watcher := mapwatch.New(fsutil.OSFileSystem{}, watchDir, cfg.GetPollInterval(), sink)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run the watcher routine that feeds message files through the decoder
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := watcher.Watch(ctx); err != nil && err != context.Canceled {
			log.Printf("failed to watch %s: %v", watchDir, err)
		}
		log.Print("watcher routine terminated")
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		server := &http.Server{
			Addr:    listenAddr,
			Handler: api.NewServer(store, hub, renderer, tracker).ServeMux(),
		}

		go func() {
			log.Printf("listening on %s, watching %s", listenAddr, watchDir)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
}
