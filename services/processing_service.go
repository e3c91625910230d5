//go:generate go run go.uber.org/mock/mockgen -source=processing_service.go -destination=../mocks/mock_processing_service.go -package=mocks
package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"stitch-client/domain"
	"stitch-client/infrastructure/api"
	"stitch-client/runtime/workers"
	"stitch-client/validation"
)

// exportSuffix is appended to the original name (extension stripped) to
// build the artifact filename for full-processing downloads.
const exportSuffix = "_processed.jsonl"

type IStitchAPI interface {
	QuickProcess(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions) (domain.ProcessingResult, error)
	ProcessFull(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions) (string, error)
	JobStatus(ctx context.Context, jobID string) (domain.JobStatus, error)
	Download(ctx context.Context, ref string) (io.ReadCloser, error)
}

type IProcessingService interface {
	ProcessQuick(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions) (domain.ProcessingResult, error)
	ProcessFull(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions, onProgress func(float64)) (FullResult, error)
	DownloadExport(ctx context.Context, ref string) (io.ReadCloser, error)
}

// FullResult is the outcome of the long-running flow: the job handle, the
// reference to the exported artifact and the filename to store it under.
type FullResult struct {
	JobID       string
	DownloadRef string
	ExportName  string
}

// ProcessingService wires the upload lifecycle in strict order:
// validate, submit with retry, normalize, and for full jobs poll until a
// terminal status. Concurrent uploads are independent: the service holds
// no per-upload mutable state.
type ProcessingService struct {
	validator    *validation.Validator
	api          IStitchAPI
	log          *slog.Logger
	pollInterval time.Duration
}

func NewProcessingService(
	validator *validation.Validator,
	stitchAPI IStitchAPI,
	log *slog.Logger,
	pollInterval time.Duration,
) *ProcessingService {
	return &ProcessingService{
		validator:    validator,
		api:          stitchAPI,
		log:          log,
		pollInterval: pollInterval,
	}
}

// ProcessQuick validates the candidate, submits it for synchronous
// processing and returns the normalized result.
func (s *ProcessingService) ProcessQuick(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions) (domain.ProcessingResult, error) {
	normalized, perr := s.gate(candidate)
	if perr != nil {
		return domain.ProcessingResult{}, perr
	}
	return s.api.QuickProcess(ctx, *normalized, opts)
}

// ProcessFull validates the candidate, submits it for asynchronous
// processing and polls the job until a terminal status. onProgress
// receives the authoritative server-side progress.
func (s *ProcessingService) ProcessFull(ctx context.Context, candidate domain.UploadCandidate, opts api.SubmitOptions, onProgress func(float64)) (FullResult, error) {
	normalized, perr := s.gate(candidate)
	if perr != nil {
		return FullResult{}, perr
	}

	jobID, err := s.api.ProcessFull(ctx, *normalized, opts)
	if err != nil {
		return FullResult{}, err
	}
	s.log.Info("Full processing job submitted", "job_id", jobID, "file", normalized.Name)

	poller := workers.NewJobPollerWorker(s.api, s.log, s.pollInterval, onProgress)
	ref, err := poller.Run(ctx, jobID)
	if err != nil {
		return FullResult{}, err
	}

	return FullResult{
		JobID:       jobID,
		DownloadRef: ref,
		ExportName:  ExportFilename(normalized.Name),
	}, nil
}

// DownloadExport fetches the exported artifact behind a reference
// produced by ProcessFull.
func (s *ProcessingService) DownloadExport(ctx context.Context, ref string) (io.ReadCloser, error) {
	return s.api.Download(ctx, ref)
}

// gate runs validation and converts a rejection into the single
// non-recoverable error kind.
func (s *ProcessingService) gate(candidate domain.UploadCandidate) (*domain.UploadCandidate, *domain.ProcessingError) {
	outcome := s.validator.Validate(candidate)
	for _, warning := range outcome.Warnings {
		s.log.Warn("Validation warning", "file", candidate.Name, "warning", warning)
	}
	if !outcome.IsValid {
		message := "file validation failed"
		if len(outcome.Errors) > 0 {
			message = outcome.Errors[0]
		}
		return nil, domain.NewProcessingError(domain.ErrorKindValidation, message, map[string]any{
			"errors":   outcome.Errors,
			"warnings": outcome.Warnings,
		})
	}
	return outcome.Normalized, nil
}

// ExportFilename strips the original extension and appends the export
// suffix: "report.pdf" becomes "report_processed.jsonl".
func ExportFilename(original string) string {
	base := original
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + exportSuffix
}
