package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/models"
)

// Client posts analysis reports to a webhook endpoint, reusing
// connections and marshaling buffers across deliveries.
type Client struct {
	url        string
	httpClient *http.Client
	config     *config.Config
	bufferPool sync.Pool
}

// NewClient creates a webhook client with pooled connections.
func NewClient(url string, cfg *config.Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		// Reports are small; compression costs more than it saves.
		DisableCompression: true,
	}

	return &Client{
		url:    url,
		config: cfg,
		httpClient: &http.Client{
			Timeout:   45 * time.Second,
			Transport: transport,
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 4096))
			},
		},
	}
}

// Send delivers one analysis report.
func (c *Client) Send(item models.WebhookItem) error {
	payload := models.WebhookResponse{
		ID:        item.RequestID,
		BatchID:   item.BatchID,
		Iteration: item.Iteration,
		Time:      time.Now().Format(time.RFC3339Nano),
		Report:    sanitizeReport(item.Report),
	}

	buf := c.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer c.bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return fmt.Errorf("failed to marshal webhook data: %w", err)
	}

	resp, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if !c.config.Quiet {
		log.Printf("Webhook sent - ID: %s, min VSWR: %g at %d Hz, status: %d",
			item.RequestID, payload.Report.MinVSWR, payload.Report.ResonantFreq, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	return nil
}

// sanitizeReport replaces the infinities and NaNs the transforms
// legitimately produce with zeros, since encoding/json rejects them.
func sanitizeReport(report models.AnalysisReport) models.AnalysisReport {
	report.MinVSWR = sanitizeFloat(report.MinVSWR)
	report.MaxGainDB = sanitizeFloat(report.MaxGainDB)

	points := make([]models.PointMetrics, len(report.Points))
	for i, pm := range report.Points {
		pm.VSWR = sanitizeFloat(pm.VSWR)
		pm.Resistance = sanitizeFloat(pm.Resistance)
		pm.Reactance = sanitizeFloat(pm.Reactance)
		pm.QFactor = sanitizeFloat(pm.QFactor)
		pm.Capacitance = sanitizeFloat(pm.Capacitance)
		pm.Inductance = sanitizeFloat(pm.Inductance)
		pm.GainDB = sanitizeFloat(pm.GainDB)
		pm.GroupDelay = sanitizeFloat(pm.GroupDelay)
		points[i] = pm
	}
	report.Points = points
	return report
}

func sanitizeFloat(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
