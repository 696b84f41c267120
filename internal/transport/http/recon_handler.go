package http

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "dgrhcli/internal/errors"
	"dgrhcli/internal/middleware"
	"dgrhcli/internal/recon"
	"dgrhcli/internal/services"
	"dgrhcli/pkg/contracts/domain"
)

// Multipart field names for the reconcile upload.
const (
	fieldAlarms    = "alarms"
	fieldReference = "reference"
)

// ReconHandler exposes the reconciliation pipeline over HTTP.
type ReconHandler struct {
	service       *services.ReconService
	errorHandler  *apierrors.ErrorHandler
	logger        *slog.Logger
	maxFileBytes  int64
	maxAlarmFiles int
}

// NewReconHandler creates the handler.
func NewReconHandler(service *services.ReconService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger, maxFileBytes int64, maxAlarmFiles int) *ReconHandler {
	return &ReconHandler{
		service:       service,
		errorHandler:  errorHandler,
		logger:        logger.With(slog.String("component", "recon_handler")),
		maxFileBytes:  maxFileBytes,
		maxAlarmFiles: maxAlarmFiles,
	}
}

// Routes mounts the reconcile endpoints.
func (h *ReconHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Reconcile)
	r.Get("/latest", h.Latest)
	r.Get("/download/{table}", h.Download)
	return r
}

// RunResponse is the POST /api/reconcile and GET /api/reconcile/latest
// body.
type RunResponse struct {
	RunID       string           `json:"run_id"`
	StartedAt   time.Time        `json:"started_at"`
	DurationMS  int64            `json:"duration_ms"`
	InputFiles  []string         `json:"input_files"`
	SummaryRows int              `json:"summary_rows"`
	KPIs        domain.KPIReport `json:"kpis"`
}

// Reconcile accepts a multipart upload of alarm files plus one reference
// file and runs the pipeline synchronously.
func (h *ReconHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileBytes*int64(h.maxAlarmFiles+1))
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	alarmHeaders := r.MultipartForm.File[fieldAlarms]
	if len(alarmHeaders) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(fieldAlarms, "at least one alarm file is required"))
		return
	}
	if len(alarmHeaders) > h.maxAlarmFiles {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(fieldAlarms,
			fmt.Sprintf("at most %d alarm files per run", h.maxAlarmFiles)))
		return
	}

	refHeaders := r.MultipartForm.File[fieldReference]
	if len(refHeaders) != 1 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(fieldReference, "exactly one reference file is required"))
		return
	}

	alarms := make([]services.UploadedFile, 0, len(alarmHeaders))
	for _, fh := range alarmHeaders {
		upload, err := h.readUpload(fh)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		alarms = append(alarms, upload)
	}
	reference, err := h.readUpload(refHeaders[0])
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, runErr := h.service.Reconcile(r.Context(), alarms, reference)
	if runErr != nil {
		h.errorHandler.HandleError(w, r, runErr)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, runResponse(result))
}

// Latest returns the most recent run's KPI report.
func (h *ReconHandler) Latest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Latest()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrRunNotFound)
		return
	}
	render.JSON(w, r, runResponse(result))
}

// Download streams one of the latest run's tables as CSV.
func (h *ReconHandler) Download(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	doc, err := h.service.Document(table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table+".csv"))
	if err := doc.WriteTo(w); err != nil {
		// Headers are gone; log and give up on this response.
		h.logger.ErrorContext(r.Context(), "csv download failed mid-stream",
			slog.String("table", table),
			slog.String("error", err.Error()))
	}
}

func (h *ReconHandler) readUpload(fh *multipart.FileHeader) (services.UploadedFile, error) {
	if !middleware.ValidTableFilename(fh.Filename) {
		return services.UploadedFile{}, apierrors.ErrValidation("filename",
			fmt.Sprintf("%q is not an accepted .csv or .xlsx upload name", fh.Filename))
	}
	if fh.Size > h.maxFileBytes {
		return services.UploadedFile{}, apierrors.ErrPayloadTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return services.UploadedFile{}, apierrors.InvalidRequestWithError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileBytes))
	if err != nil {
		return services.UploadedFile{}, apierrors.InvalidRequestWithError(err)
	}
	return services.UploadedFile{Name: fh.Filename, Data: data}, nil
}

func runResponse(result *recon.Result) *RunResponse {
	return &RunResponse{
		RunID:       result.RunID,
		StartedAt:   result.StartedAt,
		DurationMS:  result.Duration.Milliseconds(),
		InputFiles:  result.InputFiles,
		SummaryRows: len(result.Summary),
		KPIs:        result.KPIs,
	}
}
