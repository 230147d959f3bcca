package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/vnatools/gorfcore/internal/processing"
	"github.com/vnatools/gorfcore/pkg/config"
	"github.com/vnatools/gorfcore/pkg/format"
	"github.com/vnatools/gorfcore/pkg/models"
	"github.com/vnatools/gorfcore/pkg/server"
)

func main() {
	cfg := config.DefaultConfig()
	serverCfg := config.DefaultServerConfig()

	var (
		configPath string
		fields     config.FieldsFlag
	)

	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&cfg.File, "f", "sweep.txt", "Measurement data file (freq re im columns, one pair per field)")
	flag.Var(&fields, "field", "S-parameter field name (repeatable, default 11 and 21)")
	flag.Float64Var(&cfg.RefImpedance, "r", 50, "Reference impedance (ohms)")
	flag.Float64Var(&cfg.Attenuation, "att", 0, "Known through-path attenuation to remove (dB)")
	flag.IntVar(&cfg.Points, "points", 0, "Resample the sweep to this many evenly spaced points")
	flag.BoolVar(&cfg.HTTPServer, "http", false, "Start HTTP server instead of analyzing a file")
	flag.StringVar(&serverCfg.Port, "port", serverCfg.Port, "HTTP server port")
	flag.BoolVar(&cfg.Quiet, "q", false, "Quiet mode")
	flag.Parse()

	if configPath != "" {
		fileCfg, fileServerCfg, err := config.Load(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg, serverCfg = fileCfg, fileServerCfg
		// Explicit flags win over the config file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "r":
				cfg.RefImpedance, _ = strconv.ParseFloat(f.Value.String(), 64)
			case "att":
				cfg.Attenuation, _ = strconv.ParseFloat(f.Value.String(), 64)
			case "points":
				cfg.Points, _ = strconv.Atoi(f.Value.String())
			case "q":
				cfg.Quiet = f.Value.String() == "true"
			case "http":
				cfg.HTTPServer = f.Value.String() == "true"
			case "f":
				cfg.File = f.Value.String()
			case "port":
				serverCfg.Port = f.Value.String()
			}
		})
	}
	if len(fields) > 0 {
		cfg.Fields = []string(fields)
	}

	analyzer := processing.NewSweepAnalyzer()
	processor := func(sweep models.SweepData) (models.AnalysisReport, error) {
		return analyzer.Analyze(sweep, cfg)
	}

	if cfg.HTTPServer {
		srv, err := server.New(server.Options{
			Config:       cfg,
			ServerConfig: serverCfg,
			Processor:    processor,
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Fatal(srv.Start())
	}

	sweep, err := parseFile(cfg.File, cfg.Fields)
	if err != nil {
		log.Fatal(err)
	}

	report, err := processor(sweep)
	if err != nil {
		log.Fatal(err)
	}

	printReport(report, len(cfg.Fields) > 1)
}

// parseFile reads whitespace-separated measurement rows: a frequency
// column followed by one re/im pair per field.
func parseFile(file string, fields []string) (models.SweepData, error) {
	f, err := os.Open(file)
	if err != nil {
		return models.SweepData{}, err
	}
	defer f.Close()

	sweep := models.SweepData{
		Fields: make(map[string][]models.Sample, len(fields)),
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Fields(line)
		if len(cols) != 1+2*len(fields) {
			return models.SweepData{}, fmt.Errorf("parsing %s: expected %d columns, got %d",
				file, 1+2*len(fields), len(cols))
		}

		freq, err := strconv.ParseFloat(cols[0], 64)
		if err != nil {
			return models.SweepData{}, fmt.Errorf("parsing %s: %w", file, err)
		}
		sweep.Frequencies = append(sweep.Frequencies, int(freq))

		for i, field := range fields {
			re, err := strconv.ParseFloat(cols[1+2*i], 64)
			if err != nil {
				return models.SweepData{}, fmt.Errorf("parsing %s: %w", file, err)
			}
			im, err := strconv.ParseFloat(cols[2+2*i], 64)
			if err != nil {
				return models.SweepData{}, fmt.Errorf("parsing %s: %w", file, err)
			}
			sweep.Fields[field] = append(sweep.Fields[field], models.Sample{Real: re, Imag: im})
		}
	}
	if err := scanner.Err(); err != nil {
		return models.SweepData{}, err
	}
	return sweep, nil
}

// printReport writes the per-point table and the sweep summary.
func printReport(report models.AnalysisReport, hasThrough bool) {
	header := fmt.Sprintf("%-12s %-24s %-8s %-8s %-10s %-10s", "Frequency", "Impedance", "VSWR", "Q", "C", "L")
	if hasThrough {
		header += fmt.Sprintf(" %-10s %-10s", "Gain", "GrpDelay")
	}
	fmt.Println(header)

	for _, pm := range report.Points {
		line := fmt.Sprintf("%-12s %-24s %-8s %-8s %-10s %-10s",
			format.Frequency(pm.Frequency),
			format.Impedance(complex(pm.Resistance, pm.Reactance)),
			format.VSWR(pm.VSWR),
			format.QFactor(pm.QFactor),
			format.Capacitance(pm.Capacitance),
			format.Inductance(pm.Inductance))
		if hasThrough {
			line += fmt.Sprintf(" %-10s %-10s", format.Gain(pm.GainDB), format.GroupDelay(pm.GroupDelay))
		}
		fmt.Println(line)
	}

	fmt.Printf("\nSweep %s to %s, %d source points", format.Frequency(report.MinFreq),
		format.Frequency(report.MaxFreq), report.SourcePoints)
	if report.Interpolated {
		fmt.Printf(" (resampled to %d)", len(report.Points))
	}
	fmt.Println()
	fmt.Printf("Resonance (min VSWR %s) at %s\n", format.VSWR(report.MinVSWR), format.Frequency(report.ResonantFreq))
	if hasThrough {
		fmt.Printf("Max gain %s\n", format.Gain(report.MaxGainDB))
	}
}
