package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/gcbaptista/page-search/api"
	"github.com/gcbaptista/page-search/config"
	"github.com/gcbaptista/page-search/internal/engine"
	"github.com/gcbaptista/page-search/internal/metrics"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML configuration file")
		port       = flag.Int("port", 0, "Port to run the server on (overrides config)")
		dataDir    = flag.String("data-dir", "", "Directory to store index snapshots (overrides config)")
		corpusDir  = flag.String("corpus", "", "Directory of HTML pages to index at startup (overrides config)")
		repl       = flag.Bool("repl", false, "Query the startup index interactively instead of serving HTTP")
	)
	flag.Parse()

	if *help {
		fmt.Printf("Page Search - keyword search over a directory of HTML pages\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s --corpus ./input_pages --repl   # Index pages and query them interactively\n", os.Args[0])
		fmt.Printf("  %s --corpus ./input_pages          # Index pages and serve the HTTP API\n", os.Args[0])
		fmt.Printf("  %s --config page-search.yaml        # Use a configuration file\n", os.Args[0])
		return
	}
	if *version {
		fmt.Printf("Page Search v1.0.0\n")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *corpusDir != "" {
		cfg.Corpus.Dir = *corpusDir
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled && !*repl {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
	}

	log.Printf("Using data directory: %s", cfg.DataDir)
	searchEngine := engine.NewEngine(cfg.DataDir,
		engine.WithMetrics(m),
		engine.WithMaxWorkers(cfg.Jobs.MaxWorkers),
		engine.WithCorpusOptions(cfg.Corpus.Extension, cfg.Corpus.Concurrency),
	)
	defer searchEngine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Corpus.Dir != "" {
		log.Printf("Crawling directory: %s", cfg.Corpus.Dir)
		if err := searchEngine.BuildIndexFromDir(ctx, cfg.Index, cfg.Corpus.Dir); err != nil {
			log.Fatalf("Failed to index %s: %v", cfg.Corpus.Dir, err)
		}
		if instance, err := searchEngine.Instance(cfg.Index.Name); err == nil {
			stats := instance.Stats()
			log.Printf("Indexed %d pages with %d unique terms (%d postings, %d trie nodes)",
				stats.Documents, stats.Terms, stats.Postings, stats.TrieNodes)
		}
	}

	if *repl {
		instance, err := searchEngine.Instance(cfg.Index.Name)
		if err != nil {
			log.Fatalf("No index to query: %v (use --corpus to build one)", err)
		}
		if err := runREPL(os.Stdin, os.Stdout, instance); err != nil {
			log.Fatalf("Reading queries: %v", err)
		}
		return
	}

	router := gin.Default()
	router.Use(serverMiddleware(cfg.Server.MaxRequestSize)...)
	api.SetupRoutes(router, searchEngine, m)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: server shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on port %d...", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Server stopped")
}

// serverMiddleware returns the middleware applied ahead of the API routes.
func serverMiddleware(maxRequestSize int64) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(maxRequestSize),
	}
}
