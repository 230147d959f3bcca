package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/handlers"
	"github.com/vnatools/gorfcore/pkg/metrics"
	"github.com/vnatools/gorfcore/pkg/models"
	"github.com/vnatools/gorfcore/pkg/profiling"
	"github.com/vnatools/gorfcore/pkg/webhook"
	"github.com/vnatools/gorfcore/pkg/worker"
)

// Server is the HTTP ingest service: sweeps come in over JSON, get
// analyzed on the worker pool and leave as webhook reports.
type Server struct {
	config        *config.Config
	serverConfig  *config.ServerConfig
	workerPool    *worker.Pool
	webhookClient *webhook.Client
	httpServer    *http.Server
	profiler      *profiling.Profiler
	middleware    *profiling.Middleware
	collector     *metrics.Collector
	shutdown      chan struct{}
}

// Options holds configuration for creating a new server.
type Options struct {
	Config       *config.Config
	ServerConfig *config.ServerConfig
	Processor    handlers.ProcessorFunc
}

// New creates a new server instance.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.ServerConfig == nil {
		opts.ServerConfig = config.DefaultServerConfig()
	}

	s := &Server{
		config:       opts.Config,
		serverConfig: opts.ServerConfig,
		profiler:     profiling.New(opts.ServerConfig),
		middleware:   profiling.NewMiddleware(opts.ServerConfig.EnableProfiling),
		shutdown:     make(chan struct{}),
	}

	if opts.ServerConfig.EnableMetrics {
		collector, err := metrics.NewCollector(nil)
		if err != nil {
			return nil, fmt.Errorf("server: registering metrics: %w", err)
		}
		s.collector = collector
	}

	s.webhookClient = webhook.NewClient(opts.ServerConfig.WebhookURL, opts.Config)

	s.workerPool = worker.New(worker.Options{
		Workers:   opts.ServerConfig.WorkerCount,
		Processor: worker.ProcessorFunc(opts.Processor),
		Sender: func(item models.WebhookItem) {
			if err := s.webhookClient.Send(item); err != nil {
				log.Printf("Webhook delivery failed - ID: %s: %v", item.RequestID, err)
			}
		},
	})

	s.setupRoutes(opts.Processor)
	return s, nil
}

// setupRoutes configures HTTP routes and handlers.
func (s *Server) setupRoutes(processor handlers.ProcessorFunc) {
	mux := http.NewServeMux()

	sweepHandler := handlers.NewSweepHandler(s.config, s.workerPool, processor)
	batchHandler := handlers.NewBatchHandler(s.config, s.workerPool)

	mux.Handle("/sweep-data", s.middleware.ProfiledHandler("sweep-single", sweepHandler))
	mux.Handle("/sweep-data/batch", s.middleware.ProfiledHandler("sweep-batch", batchHandler))
	mux.HandleFunc("/health", s.healthHandler)
	if s.collector != nil {
		mux.Handle("/metrics", s.collector.Handler())
	}

	s.httpServer = &http.Server{
		Addr:         ":" + s.serverConfig.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// resultPump forwards completed batch results to the webhook queue
// and records metrics.
func (s *Server) resultPump() {
	for {
		select {
		case result := <-s.workerPool.Results():
			status := "ok"
			if !result.Success {
				status = "error"
				log.Printf("Sweep analysis failed - ID: %s, batch: %s: %s",
					result.RequestID, result.BatchID, result.Error)
			}
			if s.collector != nil {
				s.collector.ObserveSweep(status, len(result.Report.Points), result.ProcessingTime)
			}
			if result.Success {
				s.workerPool.QueueWebhook(models.WebhookItem{
					RequestID: result.RequestID,
					BatchID:   result.BatchID,
					Iteration: result.Iteration,
					Report:    result.Report,
				})
			}

		case <-s.shutdown:
			return
		}
	}
}

// healthHandler provides a simple health check endpoint.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// Start starts the HTTP server and its background pumps. It blocks
// until the server stops.
func (s *Server) Start() error {
	if err := s.profiler.Start(); err != nil {
		log.Printf("❌ Failed to start profiler: %v", err)
	}

	go s.resultPump()

	log.Println("🚀 Starting HTTP server on port", s.serverConfig.Port)
	log.Printf("  - Single: http://localhost:%s/sweep-data", s.serverConfig.Port)
	log.Printf("  - Batch:  http://localhost:%s/sweep-data/batch", s.serverConfig.Port)
	log.Printf("  - Health: http://localhost:%s/health", s.serverConfig.Port)
	if s.collector != nil {
		log.Printf("  - Metrics: http://localhost:%s/metrics", s.serverConfig.Port)
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, the pumps and the worker
// pool.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.shutdown)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.workerPool.Shutdown()
	if err := s.profiler.Stop(); err != nil {
		log.Printf("Profiler stop: %v", err)
	}
	return nil
}
