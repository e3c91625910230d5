// Package api implements the resilient HTTP client for the stitch
// processing service: request construction, per-attempt timeouts, failure
// classification, bounded retry with backoff, and handoff of raw payloads
// to the normalization layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"stitch-client/domain"
	apperrors "stitch-client/errors"
	"stitch-client/normalize"
)

const (
	quickProcessPath = "/api/v1/quick-process"
	processFullPath  = "/api/v1/process-full"
	jobStatusPath    = "/api/v1/jobs/%s/status"
	healthPath       = "/health"

	healthTimeout = 10 * time.Second

	defaultTokenizer   = "word-estimate"
	defaultMaxTokens   = 1024
	defaultChunkMethod = "paragraph"
	defaultExport      = "jsonl"
)

// SubmitOptions carries the processing parameters of one upload.
// OnProgress, when set, receives synthetic progress during submission
// (see progress.go; it is pacing feedback, not a transfer metric).
type SubmitOptions struct {
	Tokenizer         string
	MaxTokens         int
	ChunkMethod       string
	PreserveStructure bool
	ExportFormat      string
	OnProgress        func(float64)
}

func (o SubmitOptions) withDefaults() SubmitOptions {
	if o.Tokenizer == "" {
		o.Tokenizer = defaultTokenizer
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.ChunkMethod == "" {
		o.ChunkMethod = defaultChunkMethod
	}
	if o.ExportFormat == "" {
		o.ExportFormat = defaultExport
	}
	return o
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	profile    domain.DeviceProfile
	normalizer *normalize.Normalizer
	policy     RetryPolicy
	log        *slog.Logger
}

func NewClient(baseURL string, profile domain.DeviceProfile, policy RetryPolicy, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		profile:    profile,
		normalizer: normalize.NewNormalizer(log),
		policy:     policy,
		log:        log,
	}
}

// QuickProcess submits a candidate for synchronous single-shot processing
// and returns the normalized result. A returned error is always a
// *domain.ProcessingError and represents transport or protocol failure;
// data-shape trouble inside a 2xx payload is surfaced as a status-error
// result, not as an error.
func (c *Client) QuickProcess(ctx context.Context, candidate domain.UploadCandidate, opts SubmitOptions) (domain.ProcessingResult, error) {
	opts = opts.withDefaults()
	requestID := uuid.NewString()

	reporter := newProgressReporter(opts.OnProgress)
	defer reporter.Stop()

	fields := map[string]string{
		"tokenizer":  opts.Tokenizer,
		"max_tokens": strconv.Itoa(opts.MaxTokens),
	}
	body, perr := c.doWithRetry(ctx, requestID, func() (*http.Request, error) {
		return c.multipartRequest(c.baseURL+quickProcessPath, requestID, candidate, fields)
	})
	if perr != nil {
		return domain.ProcessingResult{}, perr
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		c.log.Error("Response body is not valid JSON", "request_id", requestID, "error", err)
		return domain.ProcessingResult{}, domain.NewProcessingError(domain.ErrorKindRendering,
			"server returned an unreadable response", map[string]any{"cause": err.Error()})
	}

	result := c.normalizer.Normalize(raw)
	reporter.Complete()
	return result, nil
}

// ProcessFull submits a candidate for asynchronous full processing and
// returns the job handle to poll.
func (c *Client) ProcessFull(ctx context.Context, candidate domain.UploadCandidate, opts SubmitOptions) (string, error) {
	opts = opts.withDefaults()
	requestID := uuid.NewString()

	reporter := newProgressReporter(opts.OnProgress)
	defer reporter.Stop()

	fields := map[string]string{
		"tokenizer":          opts.Tokenizer,
		"max_tokens":         strconv.Itoa(opts.MaxTokens),
		"chunk_method":       opts.ChunkMethod,
		"preserve_structure": strconv.FormatBool(opts.PreserveStructure),
		"export_format":      opts.ExportFormat,
	}
	body, perr := c.doWithRetry(ctx, requestID, func() (*http.Request, error) {
		return c.multipartRequest(c.baseURL+processFullPath, requestID, candidate, fields)
	})
	if perr != nil {
		return "", perr
	}

	var payload struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.JobID == "" {
		c.log.Error("Full processing response carries no job handle", "request_id", requestID)
		return "", domain.NewProcessingError(domain.ErrorKindProcessing,
			apperrors.ErrJobMissingID.Error(), nil)
	}

	reporter.Complete()
	return payload.JobID, nil
}

// JobStatus queries the status endpoint once. Polling cadence belongs to
// the caller (see runtime/workers.JobPollerWorker).
func (c *Client) JobStatus(ctx context.Context, jobID string) (domain.JobStatus, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.profile.RequestTimeout)
	defer cancel()

	endpoint := c.baseURL + fmt.Sprintf(jobStatusPath, url.PathEscape(jobID))
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.JobStatus{}, domain.NewProcessingError(domain.ErrorKindUnknown, err.Error(), nil)
	}
	c.decorate(req, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.JobStatus{}, c.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.JobStatus{}, c.transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.JobStatus{}, errorFromResponse(resp.StatusCode, body)
	}

	var status domain.JobStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return domain.JobStatus{}, domain.NewProcessingError(domain.ErrorKindRendering,
			"job status response is not valid JSON", map[string]any{"job_id": jobID})
	}
	return status, nil
}

// Health checks the service root health endpoint: 10 second budget, no
// retries.
func (c *Client) Health(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(healthCtx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("health check body unreadable: %w", err)
	}
	if payload.Status != "" && payload.Status != "healthy" && payload.Status != "ok" {
		return fmt.Errorf("%w: %s", apperrors.ErrUnhealthyService, payload.Status)
	}
	return nil
}

// Download fetches an exported artifact. The reference may be relative, in
// which case it is resolved against the service base address. The caller
// owns the returned reader.
func (c *Client) Download(ctx context.Context, ref string) (io.ReadCloser, error) {
	target, err := c.resolveRef(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errorFromResponse(resp.StatusCode, body)
	}
	return resp.Body, nil
}

func (c *Client) resolveRef(ref string) (string, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid download reference %q: %w", ref, err)
	}
	if parsed.IsAbs() {
		return ref, nil
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base address %q: %w", c.baseURL, err)
	}
	return base.ResolveReference(parsed).String(), nil
}

// doWithRetry drives the attempt loop: build a fresh request, bound it by
// the profile timeout, classify failures, back off between retryable ones.
// The final attempt never retries regardless of classification.
func (c *Client) doWithRetry(ctx context.Context, requestID string, build func() (*http.Request, error)) ([]byte, *domain.ProcessingError) {
	var lastErr *domain.ProcessingError
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		body, retryable, perr := c.attemptOnce(ctx, build)
		if perr == nil {
			return body, nil
		}
		lastErr = perr

		if !retryable || attempt == c.policy.MaxAttempts {
			c.log.Error("Submit failed",
				"request_id", requestID, "attempt", attempt, "kind", perr.Kind, "error", perr.Message)
			return nil, lastErr
		}

		delay := c.policy.Backoff(attempt)
		c.log.Warn("Submit attempt failed, backing off",
			"request_id", requestID, "attempt", attempt, "delay", delay, "error", perr.Message)
		if err := c.policy.Sleep(ctx, delay); err != nil {
			return nil, domain.NewProcessingError(domain.ErrorKindNetwork,
				"submission cancelled while waiting to retry", map[string]any{"cause": err.Error()})
		}
	}
	return nil, lastErr
}

// attemptOnce runs a single bounded attempt and classifies its outcome.
func (c *Client) attemptOnce(ctx context.Context, build func() (*http.Request, error)) (body []byte, retryable bool, perr *domain.ProcessingError) {
	req, err := build()
	if err != nil {
		return nil, false, domain.NewProcessingError(domain.ErrorKindUnknown,
			fmt.Sprintf("building request: %v", err), nil)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.profile.RequestTimeout)
	defer cancel()

	resp, err := c.httpClient.Do(req.WithContext(attemptCtx))
	if err != nil {
		// Timeouts and unclassified network-level failures are retryable;
		// a manual abort rides the same signal path.
		return nil, true, c.transportError(err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, c.transportError(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, false, nil
	}
	return nil, c.policy.RetryableStatus(resp.StatusCode), errorFromResponse(resp.StatusCode, body)
}

func (c *Client) transportError(err error) *domain.ProcessingError {
	message := "network failure during request"
	if errors.Is(err, context.DeadlineExceeded) {
		message = "request timed out"
	}
	return domain.NewProcessingError(domain.ErrorKindNetwork, message, map[string]any{
		"cause": err.Error(),
	})
}

// multipartRequest builds the upload body: the binary payload plus
// string-encoded processing parameters.
func (c *Client) multipartRequest(endpoint, requestID string, candidate domain.UploadCandidate, fields map[string]string) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", candidate.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(candidate.Data); err != nil {
		return nil, err
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.decorate(req, requestID)
	return req, nil
}

// decorate stamps the correlation id and, on mobile profiles, the device
// classification hints the service uses for tier selection.
func (c *Client) decorate(req *http.Request, requestID string) {
	req.Header.Set("X-Request-ID", requestID)
	if c.profile.IsMobile {
		deviceType := "mobile"
		if c.profile.IsTablet {
			deviceType = "tablet"
		}
		req.Header.Set("X-Device-Type", deviceType)
	}
}
