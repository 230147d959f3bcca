package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/vnatools/gorfcore/internal/utils"
	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/models"
	"github.com/vnatools/gorfcore/pkg/worker"
)

// BatchHandler handles batch sweep analysis requests by fanning the
// sweeps out over the worker pool.
type BatchHandler struct {
	config     *config.Config
	workerPool *worker.Pool
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(cfg *config.Config, pool *worker.Pool) *BatchHandler {
	return &BatchHandler{
		config:     cfg,
		workerPool: pool,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var batch models.SweepBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(batch.Sweeps) == 0 {
		writeError(w, "Empty batch", http.StatusBadRequest)
		return
	}

	if batch.BatchID == "" {
		batch.BatchID = utils.RequestID()
	}

	go h.submitBatch(batch)

	if !h.config.Quiet {
		log.Printf("Batch received - ID: %s, sweeps: %d", batch.BatchID, len(batch.Sweeps))
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"batch_id": batch.BatchID,
		"sweeps":   len(batch.Sweeps),
	})
}

// submitBatch queues every sweep of the batch as its own work item.
// Completed results are forwarded to the webhook queue by the server's
// result pump.
func (h *BatchHandler) submitBatch(batch models.SweepBatch) {
	for i, item := range batch.Sweeps {
		h.workerPool.SubmitJob(models.WorkItem{
			ID:        i,
			RequestID: utils.RequestID(),
			BatchID:   batch.BatchID,
			Iteration: item.Iteration,
			Sweep:     item.SweepData,
			StartTime: time.Now(),
		})
	}
}
