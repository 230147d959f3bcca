package webhook

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/models"
)

func quietConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Quiet = true
	return cfg
}

func TestSend(t *testing.T) {
	received := make(chan models.WebhookResponse, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload models.WebhookResponse
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding webhook payload: %v", err)
		}
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietConfig())
	err := client.Send(models.WebhookItem{
		RequestID: "req-1",
		Report: models.AnalysisReport{
			ResonantFreq: 2000000,
			MinVSWR:      1.5,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	payload := <-received
	if payload.ID != "req-1" {
		t.Errorf("payload ID = %q", payload.ID)
	}
	if payload.Report.ResonantFreq != 2000000 || payload.Report.MinVSWR != 1.5 {
		t.Errorf("payload report = %+v", payload.Report)
	}
	if payload.Time == "" {
		t.Error("payload timestamp empty")
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietConfig())
	if err := client.Send(models.WebhookItem{RequestID: "req-2"}); err == nil {
		t.Error("500 response reported as success")
	}
}

func TestSanitizeReport(t *testing.T) {
	report := models.AnalysisReport{
		MinVSWR:   -3,
		MaxGainDB: math.Inf(-1),
		Points: []models.PointMetrics{{
			VSWR:        math.Inf(1),
			Capacitance: math.Inf(-1),
			Inductance:  math.NaN(),
			GainDB:      -20,
		}},
	}

	clean := sanitizeReport(report)
	if clean.MaxGainDB != 0 {
		t.Errorf("MaxGainDB = %g, want 0", clean.MaxGainDB)
	}
	// Finite values pass through untouched, negative ones included.
	if clean.MinVSWR != -3 {
		t.Errorf("MinVSWR = %g, want -3", clean.MinVSWR)
	}
	p := clean.Points[0]
	if p.VSWR != 0 || p.Capacitance != 0 || p.Inductance != 0 {
		t.Errorf("point not sanitized: %+v", p)
	}
	if p.GainDB != -20 {
		t.Errorf("GainDB = %g, want -20", p.GainDB)
	}

	// The original report is left alone.
	if !math.IsInf(report.Points[0].VSWR, 1) {
		t.Error("sanitize mutated the input report")
	}
}
