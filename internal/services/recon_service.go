package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"dgrhcli/internal/errors"
	"dgrhcli/internal/exporter"
	"dgrhcli/internal/readcache"
	"dgrhcli/internal/recon"
)

// UploadedFile is one raw upload: the client-supplied name and the file
// bytes.
type UploadedFile struct {
	Name string
	Data []byte
}

// ReconService runs reconciliations and retains the latest result in
// memory for the status and download endpoints. Nothing persists across
// process restarts.
type ReconService struct {
	logger   *slog.Logger
	pipeline *recon.Pipeline
	cache    *readcache.Cache
	metrics  *Metrics

	mu   sync.RWMutex
	last *recon.Result
}

// NewReconService creates the service. metrics may be nil in tests.
func NewReconService(logger *slog.Logger, metrics *Metrics) *ReconService {
	return &ReconService{
		logger:   logger.With(slog.String("component", "recon_service")),
		pipeline: recon.NewPipeline(logger),
		cache:    readcache.New(64),
		metrics:  metrics,
	}
}

// Reconcile parses the uploads and runs the full pipeline. On success the
// result replaces the previous run.
func (s *ReconService) Reconcile(ctx context.Context, alarmUploads []UploadedFile, reference UploadedFile) (*recon.Result, error) {
	alarmFiles := make([]recon.AlarmFile, 0, len(alarmUploads))
	for _, upload := range alarmUploads {
		table, err := s.cache.Read(upload.Data, upload.Name)
		if err != nil {
			s.countRun("error")
			return nil, err
		}
		alarmFiles = append(alarmFiles, recon.AlarmFile{Name: upload.Name, Table: table})
	}

	refTable, err := s.cache.Read(reference.Data, reference.Name)
	if err != nil {
		s.countRun("error")
		return nil, err
	}

	result, err := s.pipeline.Run(ctx, alarmFiles, refTable)
	if err != nil {
		s.countRun("error")
		return nil, err
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues("success").Inc()
		s.metrics.RowsTotal.Add(float64(len(result.Raw)))
		s.metrics.RunDuration.Observe(result.Duration.Seconds())
		s.metrics.SitesPerRun.Observe(float64(result.KPIs.TotalSites))
	}
	s.logger.InfoContext(ctx, "reconciliation stored",
		slog.String("run_id", result.RunID),
		slog.Int("sites", result.KPIs.TotalSites))
	return result, nil
}

// Latest returns the most recent successful run.
func (s *ReconService) Latest() (*recon.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}

// Document renders a table of the latest run as CSV. Valid names are
// raw, summary, kpis and the KPI subset names.
func (s *ReconService) Document(table string) (*exporter.Document, error) {
	result, ok := s.Latest()
	if !ok {
		return nil, errors.ErrRunNotFound
	}

	switch table {
	case "raw":
		return exporter.RawDocument(result.Raw), nil
	case "summary":
		return exporter.SummaryDocument(result.Summary), nil
	case "kpis":
		return exporter.KPIDocument(result.KPIs), nil
	}
	if subset, ok := result.Subsets[table]; ok {
		return exporter.SummaryDocument(subset), nil
	}
	return nil, errors.NotFoundError(fmt.Sprintf("table %q", table))
}

func (s *ReconService) countRun(status string) {
	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(status).Inc()
	}
}
