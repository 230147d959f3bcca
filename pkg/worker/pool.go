package worker

import (
	"log"
	"sync"
	"time"

	"github.com/vnatools/gorfcore/pkg/models"
)

// ProcessorFunc analyzes one sweep and returns its report.
type ProcessorFunc func(sweep models.SweepData) (models.AnalysisReport, error)

// SenderFunc delivers one webhook item.
type SenderFunc func(item models.WebhookItem)

// Pool manages concurrent sweep analysis workers plus an asynchronous
// webhook delivery queue.
type Pool struct {
	jobs         chan models.WorkItem
	results      chan models.WorkResult
	webhookQueue chan models.WebhookItem
	workers      int
	bufferPool   sync.Pool
	shutdown     chan struct{}
	wg           sync.WaitGroup
	processor    ProcessorFunc
	sender       SenderFunc
}

// Options holds configuration for creating a new worker pool.
type Options struct {
	Workers   int
	Processor ProcessorFunc
	Sender    SenderFunc
}

// New creates and starts a worker pool.
func New(opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}

	// Queues are sized so that submitting new jobs and draining
	// results does not block while the workers are busy; webhooks
	// get a deeper buffer since delivery is the slowest step.
	pool := &Pool{
		jobs:         make(chan models.WorkItem, opts.Workers*2),
		results:      make(chan models.WorkResult, opts.Workers*2),
		webhookQueue: make(chan models.WebhookItem, opts.Workers*4),
		workers:      opts.Workers,
		shutdown:     make(chan struct{}),
		processor:    opts.Processor,
		sender:       opts.Sender,
		bufferPool: sync.Pool{
			New: func() interface{} {
				// Typical sweeps run 101 to 1001 points.
				return &models.BufferSet{
					Resistance: make([]float64, 0, 256),
					Reactance:  make([]float64, 0, 256),
					Freqs:      make([]int, 0, 256),
				}
			},
		},
	}

	pool.start()
	return pool
}

// start launches the workers and the webhook processor.
func (p *Pool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.wg.Add(1)
	go p.webhookProcessor()

	log.Printf("🔧 Worker pool started with %d workers", p.workers)
}

// worker processes sweep jobs from the jobs channel.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			p.results <- p.processJob(job)

		case <-p.shutdown:
			return
		}
	}
}

// processJob runs the analyzer and extracts the impedance series with
// pooled buffers.
func (p *Pool) processJob(job models.WorkItem) models.WorkResult {
	buffers := p.bufferPool.Get().(*models.BufferSet)
	defer p.bufferPool.Put(buffers)

	startTime := time.Now()
	report, err := p.processor(job.Sweep)
	processingTime := time.Since(startTime)

	result := models.WorkResult{
		ID:             job.ID,
		RequestID:      job.RequestID,
		BatchID:        job.BatchID,
		Iteration:      job.Iteration,
		Report:         report,
		ProcessingTime: processingTime,
		Success:        err == nil,
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	p.extractImpedanceSeries(report, buffers)

	// Copies, since the buffers are reused for the next job.
	result.Freqs = make([]int, len(buffers.Freqs))
	result.Resistance = make([]float64, len(buffers.Resistance))
	result.Reactance = make([]float64, len(buffers.Reactance))
	copy(result.Freqs, buffers.Freqs)
	copy(result.Resistance, buffers.Resistance)
	copy(result.Reactance, buffers.Reactance)

	return result
}

// extractImpedanceSeries fills the buffers with the per-point
// impedance series of a report.
func (p *Pool) extractImpedanceSeries(report models.AnalysisReport, buffers *models.BufferSet) {
	n := len(report.Points)

	if cap(buffers.Resistance) < n {
		newCap := n + n>>2 // +25% headroom for varying sweep sizes
		if newCap < 256 {
			newCap = 256
		}
		buffers.Resistance = make([]float64, n, newCap)
		buffers.Reactance = make([]float64, n, newCap)
		buffers.Freqs = make([]int, n, newCap)
	} else {
		buffers.Resistance = buffers.Resistance[:n]
		buffers.Reactance = buffers.Reactance[:n]
		buffers.Freqs = buffers.Freqs[:n]
	}

	for i, pm := range report.Points {
		buffers.Freqs[i] = pm.Frequency
		buffers.Resistance[i] = pm.Resistance
		buffers.Reactance[i] = pm.Reactance
	}
}

// webhookProcessor delivers queued webhooks without blocking workers.
func (p *Pool) webhookProcessor() {
	defer p.wg.Done()

	for {
		select {
		case item := <-p.webhookQueue:
			if p.sender != nil {
				go p.sender(item)
			}

		case <-p.shutdown:
			return
		}
	}
}

// SubmitJob submits a job to the worker pool, blocking when the queue
// is full.
func (p *Pool) SubmitJob(job models.WorkItem) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("⚠️  Worker pool jobs channel full, job may be delayed")
		p.jobs <- job
	}
}

// GetResult retrieves a result from the worker pool (non-blocking).
func (p *Pool) GetResult() (models.WorkResult, bool) {
	select {
	case result := <-p.results:
		return result, true
	default:
		return models.WorkResult{}, false
	}
}

// Results exposes the result channel for pump loops.
func (p *Pool) Results() <-chan models.WorkResult {
	return p.results
}

// QueueWebhook queues a webhook for async delivery, dropping it when
// the queue is full.
func (p *Pool) QueueWebhook(item models.WebhookItem) {
	select {
	case p.webhookQueue <- item:
	default:
		log.Printf("⚠️  Webhook queue full, dropping webhook for %s", item.RequestID)
	}
}

// Shutdown gracefully shuts down the worker pool.
func (p *Pool) Shutdown() {
	log.Printf("🛑 Shutting down worker pool...")
	close(p.shutdown)
	p.wg.Wait()
	log.Printf("✅ Worker pool shutdown complete")
}
