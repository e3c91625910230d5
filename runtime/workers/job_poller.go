//go:generate go run go.uber.org/mock/mockgen -source=job_poller.go -destination=../../mocks/mock_status_fetcher.go -package=mocks
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stitch-client/domain"
	apperrors "stitch-client/errors"
)

type IStatusFetcher interface {
	JobStatus(ctx context.Context, jobID string) (domain.JobStatus, error)
}

// JobPollerWorker drives a submitted job to its terminal status.
// It queries the status endpoint at a fixed interval and forwards the
// server-reported progress (authoritative, unlike the synthetic submit
// progress) to the observer. The context is the only duration bound:
// callers wanting a ceiling wrap ctx with a deadline.
type JobPollerWorker struct {
	fetcher    IStatusFetcher
	log        *slog.Logger
	interval   time.Duration
	onProgress func(float64)
}

func NewJobPollerWorker(
	fetcher IStatusFetcher,
	log *slog.Logger,
	interval time.Duration,
	onProgress func(float64),
) *JobPollerWorker {
	if interval <= 0 {
		interval = time.Second
	}
	return &JobPollerWorker{
		fetcher:    fetcher,
		log:        log,
		interval:   interval,
		onProgress: onProgress,
	}
}

// Run polls until the job reaches a terminal status and returns the
// download reference of the exported artifact.
// Recoverable fetch errors are logged and polling continues; a
// non-recoverable classification aborts immediately.
func (w *JobPollerWorker) Run(ctx context.Context, jobID string) (string, error) {
	w.log.Info("Starting job poller", "job_id", jobID, "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", apperrors.ErrPollerStopped, ctx.Err())
		case <-ticker.C:
			status, err := w.fetcher.JobStatus(ctx, jobID)
			if err != nil {
				var perr *domain.ProcessingError
				if errors.As(err, &perr) && !perr.Recoverable {
					return "", err
				}
				w.log.Warn("Status poll failed, will retry", "job_id", jobID, "error", err)
				continue
			}

			if w.onProgress != nil {
				w.onProgress(status.Progress)
			}

			switch status.Status {
			case domain.JobCompleted:
				if status.DownloadURL == "" {
					return "", domain.NewProcessingError(domain.ErrorKindProcessing,
						"job completed without a download reference", map[string]any{"job_id": jobID})
				}
				w.log.Info("Job completed", "job_id", jobID)
				return status.DownloadURL, nil
			case domain.JobFailed:
				message := status.Error
				if message == "" {
					message = "job failed without detail"
				}
				return "", domain.NewProcessingError(domain.ErrorKindProcessing, message,
					map[string]any{"job_id": jobID})
			default:
				w.log.Debug("Job still processing", "job_id", jobID, "progress", status.Progress)
			}
		}
	}
}
