package processing

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"

	"github.com/vnatools/gorfcore"
	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/models"
)

// SweepAnalyzer turns raw sweep data into per-point and summary RF
// metrics. The first configured field is treated as the reflection
// measurement, the second (when present) as the through measurement.
type SweepAnalyzer struct{}

// NewSweepAnalyzer creates a new sweep analyzer.
func NewSweepAnalyzer() *SweepAnalyzer {
	return &SweepAnalyzer{}
}

// Analyze validates the sweep, builds a dataset from it and computes
// the analysis report. With cfg.Points set, the sweep is resampled to
// that many evenly spaced frequencies through the dataset's
// interpolators; otherwise the measured grid is kept.
func (a *SweepAnalyzer) Analyze(sweep models.SweepData, cfg *config.Config) (models.AnalysisReport, error) {
	if len(sweep.Frequencies) == 0 {
		return models.AnalysisReport{}, fmt.Errorf("no frequency data provided")
	}

	fields := cfg.Fields
	if len(fields) == 0 {
		fields = gorfcore.DefaultFields
	}

	columns := make([][]gorfcore.Datapoint, len(fields))
	for fi, field := range fields {
		samples, ok := sweep.Fields[field]
		if !ok {
			return models.AnalysisReport{}, fmt.Errorf("field %q missing from sweep data", field)
		}
		if len(samples) != len(sweep.Frequencies) {
			return models.AnalysisReport{}, fmt.Errorf("frequency and sample data length mismatch for field %q: %d vs %d",
				field, len(sweep.Frequencies), len(samples))
		}
		column := make([]gorfcore.Datapoint, len(samples))
		for i, s := range samples {
			column[i] = gorfcore.Datapoint{Freq: sweep.Frequencies[i], Re: s.Real, Im: s.Imag}
		}
		if fi == 1 {
			// Known fixed attenuation on the through path is
			// removed before analysis.
			column = gorfcore.CorrAttData(column, cfg.Attenuation)
		}
		columns[fi] = column
	}

	if !cfg.Quiet {
		log.Printf("Analyzing %d frequency points across %d fields", len(sweep.Frequencies), len(fields))
	}

	refImpedance := cfg.RefImpedance
	if refImpedance == 0 {
		refImpedance = gorfcore.DefaultRefImpedance
	}

	ds := gorfcore.NewDataset(fields...)

	// Insert and interpolate under the dataset's advisory lock so
	// the sequence stays consistent if the dataset is ever shared.
	ds.Lock()
	for i := range sweep.Frequencies {
		row := make([]gorfcore.Datapoint, len(fields))
		for fi := range fields {
			row[fi] = columns[fi][i]
		}
		if err := ds.Insert(row); err != nil {
			ds.Unlock()
			return models.AnalysisReport{}, fmt.Errorf("inserting sweep data: %w", err)
		}
	}

	rows, interpolated, err := a.gridRows(ds, cfg)
	ds.Unlock()
	if err != nil {
		return models.AnalysisReport{}, err
	}

	minFreq, err := ds.MinFreq()
	if err != nil {
		return models.AnalysisReport{}, err
	}
	maxFreq, err := ds.MaxFreq()
	if err != nil {
		return models.AnalysisReport{}, err
	}

	through := make([]gorfcore.Datapoint, 0, len(rows))
	if len(fields) > 1 {
		for _, row := range rows {
			through = append(through, row[1])
		}
	}

	points := make([]models.PointMetrics, len(rows))
	vswrs := make([]float64, len(rows))
	for i, row := range rows {
		refl := row[0]
		imp := refl.Impedance(refImpedance)
		pm := models.PointMetrics{
			Frequency:   refl.Freq,
			VSWR:        refl.VSWR(),
			Resistance:  real(imp),
			Reactance:   imag(imp),
			QFactor:     refl.QFactor(refImpedance),
			Capacitance: refl.CapacitiveEquivalent(refImpedance),
			Inductance:  refl.InductiveEquivalent(refImpedance),
		}
		if len(through) > 0 {
			pm.GainDB = through[i].Gain()
			pm.GroupDelay = gorfcore.GroupDelay(through, i)
		}
		points[i] = pm
		vswrs[i] = pm.VSWR
	}

	report := models.AnalysisReport{
		RefImpedance: refImpedance,
		MinFreq:      minFreq,
		MaxFreq:      maxFreq,
		Points:       points,
		Interpolated: interpolated,
		SourcePoints: len(sweep.Frequencies),
	}

	best := floats.MinIdx(vswrs)
	report.ResonantFreq = points[best].Frequency
	report.MinVSWR = vswrs[best]
	if len(through) > 0 {
		gains := make([]float64, len(points))
		for i, pm := range points {
			gains[i] = pm.GainDB
		}
		report.MaxGainDB = floats.Max(gains)
	}

	return report, nil
}

// gridRows returns the datapoint rows to analyze: the stored grid, or
// an evenly spaced resampling of it when cfg.Points asks for one.
func (a *SweepAnalyzer) gridRows(ds *gorfcore.Dataset, cfg *config.Config) ([][]gorfcore.Datapoint, bool, error) {
	minFreq, err := ds.MinFreq()
	if err != nil {
		return nil, false, err
	}
	maxFreq, err := ds.MaxFreq()
	if err != nil {
		return nil, false, err
	}

	if cfg.Points > 1 && minFreq != maxFreq {
		rows := make([][]gorfcore.Datapoint, cfg.Points)
		span := maxFreq - minFreq
		for i := range rows {
			freq := minFreq + span*i/(cfg.Points-1)
			row, err := ds.Freq(freq)
			if err != nil {
				return nil, false, fmt.Errorf("resampling at %d Hz: %w", freq, err)
			}
			rows[i] = row
		}
		return rows, true, nil
	}

	var rows [][]gorfcore.Datapoint
	for row := range ds.Items() {
		rows = append(rows, row)
	}
	return rows, false, nil
}
