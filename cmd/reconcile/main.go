package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dgrhcli/internal/exporter"
	"dgrhcli/internal/infrastructure"
	"dgrhcli/internal/recon"
	"dgrhcli/pkg/contracts"
)

func main() {
	var (
		alarmsFlag  = flag.String("alarms", "", "alarm files: comma-separated paths or a glob (required)")
		refFlag     = flag.String("ref", "", "refuelling reference file (required)")
		outFlag     = flag.String("out", "out", "output directory for the CSV reports")
		levelFlag   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if err := run(*alarmsFlag, *refFlag, *outFlag, *levelFlag); err != nil {
		fmt.Fprintf(os.Stderr, "dgrh-reconcile: %v\n", err)
		os.Exit(1)
	}
}

func run(alarmsArg, refArg, outDir, level string) error {
	if alarmsArg == "" {
		return fmt.Errorf("-alarms is required")
	}
	if refArg == "" {
		return fmt.Errorf("-ref is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: infrastructure.ParseLogLevel(level),
	}))

	alarmPaths, err := resolveAlarmPaths(alarmsArg)
	if err != nil {
		return err
	}

	alarmFiles := make([]recon.AlarmFile, 0, len(alarmPaths))
	for _, path := range alarmPaths {
		table, err := readTableFile(path)
		if err != nil {
			return err
		}
		alarmFiles = append(alarmFiles, recon.AlarmFile{Name: filepath.Base(path), Table: table})
	}

	reference, err := readTableFile(refArg)
	if err != nil {
		return err
	}

	pipeline := recon.NewPipeline(logger, recon.WithProgress(func(step string, rows int) {
		logger.Info("step completed", slog.String("step", step), slog.Int("rows", rows))
	}))

	result, err := pipeline.Run(context.Background(), alarmFiles, reference)
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(outDir)
	outputs := map[string]*exporter.Document{
		"raw.csv":     exporter.RawDocument(result.Raw),
		"summary.csv": exporter.SummaryDocument(result.Summary),
		"kpi.csv":     exporter.KPIDocument(result.KPIs),
	}
	for _, name := range recon.SubsetNames {
		outputs[name+".csv"] = exporter.SummaryDocument(result.Subsets[name])
	}
	for name, doc := range outputs {
		if err := writer.WriteFile(name, doc); err != nil {
			return err
		}
	}

	logger.Info("reconciliation complete",
		slog.String("run_id", result.RunID),
		slog.Int("sites", result.KPIs.TotalSites),
		slog.Int("summary_rows", len(result.Summary)),
		slog.String("out_dir", outDir))
	return nil
}

// resolveAlarmPaths accepts either a comma-separated list of paths or a
// single glob pattern.
func resolveAlarmPaths(arg string) ([]string, error) {
	var paths []string
	if strings.Contains(arg, ",") {
		for _, p := range strings.Split(arg, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	} else {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad -alarms pattern %q: %w", arg, err)
		}
		paths = matches
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no alarm files matched %q", arg)
	}
	return paths, nil
}

func readTableFile(path string) (*recon.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recon.ReadTable(data, filepath.Base(path))
}
