package models

import (
	"time"
)

// Sample is one complex value on the wire.
type Sample struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// SweepData represents one incoming frequency sweep: a shared
// frequency axis plus one sample array per S-parameter field.
type SweepData struct {
	Timestamp   string              `json:"timestamp"`
	Frequencies []int               `json:"frequencies"`
	Fields      map[string][]Sample `json:"fields"`
}

// BatchItem is a single sweep with its iteration number.
type BatchItem struct {
	SweepData SweepData `json:"sweep_data"`
	Iteration int       `json:"iteration"`
}

// SweepBatch is a batch of sweeps submitted in one request.
type SweepBatch struct {
	BatchID   string      `json:"batch_id"`
	Timestamp time.Time   `json:"timestamp"`
	Sweeps    []BatchItem `json:"sweeps"`
}

// PointMetrics holds the derived quantities of one analyzed frequency
// point. Reflection metrics come from the first configured field,
// through metrics from the second when present. Values may be
// infinite or carry the documented sentinels; they are data, not
// errors.
type PointMetrics struct {
	Frequency   int     `json:"frequency"`
	VSWR        float64 `json:"vswr"`
	Resistance  float64 `json:"resistance"`
	Reactance   float64 `json:"reactance"`
	QFactor     float64 `json:"q_factor"`
	Capacitance float64 `json:"capacitance"`
	Inductance  float64 `json:"inductance"`
	GainDB      float64 `json:"gain_db"`
	GroupDelay  float64 `json:"group_delay_s"`
}

// AnalysisReport is the full result of analyzing one sweep.
type AnalysisReport struct {
	RefImpedance float64        `json:"ref_impedance"`
	MinFreq      int            `json:"min_frequency"`
	MaxFreq      int            `json:"max_frequency"`
	ResonantFreq int            `json:"resonant_frequency"`
	MinVSWR      float64        `json:"min_vswr"`
	MaxGainDB    float64        `json:"max_gain_db"`
	Points       []PointMetrics `json:"points"`
	Interpolated bool           `json:"interpolated"`
	SourcePoints int            `json:"source_points"`
}

// WorkItem is a single sweep analysis task.
type WorkItem struct {
	ID        int
	RequestID string
	BatchID   string
	Iteration int
	Sweep     SweepData
	StartTime time.Time
}

// WorkResult contains the outcome of one sweep analysis.
type WorkResult struct {
	ID             int
	RequestID      string
	BatchID        string
	Iteration      int
	Report         AnalysisReport
	ProcessingTime time.Duration
	Success        bool
	Error          string
	Freqs          []int
	Resistance     []float64
	Reactance      []float64
}

// WebhookItem is a webhook delivery task.
type WebhookItem struct {
	RequestID string
	BatchID   string
	Iteration int
	Report    AnalysisReport
}

// WebhookResponse is the webhook payload structure.
type WebhookResponse struct {
	ID        string         `json:"id"`
	BatchID   string         `json:"batch_id,omitempty"`
	Iteration int            `json:"iteration,omitempty"`
	Time      string         `json:"time"`
	Report    AnalysisReport `json:"report"`
}

// BufferSet contains reusable buffers to reduce allocations when
// extracting per-point series from reports.
type BufferSet struct {
	Resistance []float64
	Reactance  []float64
	Freqs      []int
}
