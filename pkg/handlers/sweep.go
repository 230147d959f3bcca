package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vnatools/gorfcore/internal/utils"
	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/models"
	"github.com/vnatools/gorfcore/pkg/worker"
)

// ProcessorFunc analyzes one sweep and returns its report.
type ProcessorFunc func(sweep models.SweepData) (models.AnalysisReport, error)

// SweepHandler handles single sweep analysis requests.
type SweepHandler struct {
	config     *config.Config
	workerPool *worker.Pool
	processor  ProcessorFunc
}

// NewSweepHandler creates a new sweep handler.
func NewSweepHandler(cfg *config.Config, pool *worker.Pool, processor ProcessorFunc) *SweepHandler {
	return &SweepHandler{
		config:     cfg,
		workerPool: pool,
		processor:  processor,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *SweepHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sweep models.SweepData
	if err := json.NewDecoder(r.Body).Decode(&sweep); err != nil {
		writeError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(sweep.Frequencies) == 0 {
		writeError(w, "No data points provided", http.StatusBadRequest)
		return
	}

	requestID := utils.RequestID()

	go h.processAsync(requestID, sweep)

	if !h.config.Quiet {
		log.Printf("HTTP request received - ID: %s, data points: %d", requestID, len(sweep.Frequencies))
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"request_id": requestID,
		"message":    "Processing started",
	})
}

// processAsync analyzes the sweep off the request path and queues the
// resulting report for webhook delivery.
func (h *SweepHandler) processAsync(requestID string, sweep models.SweepData) {
	report, err := h.processor(sweep)
	if err != nil {
		log.Printf("Sweep analysis failed - ID: %s: %v", requestID, err)
		return
	}

	h.workerPool.QueueWebhook(models.WebhookItem{
		RequestID: requestID,
		Report:    report,
	})
}

// setupCORS sets up CORS headers.
func setupCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
