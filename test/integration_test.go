package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"stitch-client/device"
	"stitch-client/domain"
	"stitch-client/infrastructure/api"
	"stitch-client/services"
	"stitch-client/validation"
)

const desktopAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// fakeService simulates the processing backend: a synchronous quick
// endpoint, an asynchronous job whose status advances on every poll, and
// a download endpoint serving the exported artifact.
type fakeService struct {
	polls atomic.Int32
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/quick-process", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"enhanced": true,
			"filename": "report.txt",
			"chunks": []map[string]any{
				{"text": "first paragraph", "token_count": 4},
				{"text": "second paragraph", "token_count": 5},
			},
			"total_tokens":       9,
			"processing_time_ms": 12.5,
		})
	})
	mux.HandleFunc("POST /api/v1/process-full", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"job_id": "job-e2e"})
	})
	mux.HandleFunc("GET /api/v1/jobs/job-e2e/status", func(w http.ResponseWriter, r *http.Request) {
		switch f.polls.Add(1) {
		case 1:
			json.NewEncoder(w).Encode(map[string]any{"status": "processing", "progress": 50})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"status":       "completed",
				"progress":     100,
				"download_url": "/api/v1/processing/download/job-e2e",
			})
		}
	})
	mux.HandleFunc("GET /api/v1/processing/download/job-e2e", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"text":"first paragraph","chunk_id":1,"tokens":4,"metadata":{}}`)
		fmt.Fprintln(w, `{"text":"second paragraph","chunk_id":2,"tokens":5,"metadata":{}}`)
	})
	return mux
}

func newStack(t *testing.T, baseURL string) *services.ProcessingService {
	t.Helper()
	log := logs.GetLoggerFromString("ERROR")
	profile := device.Derive(desktopAgent)
	policy := api.DefaultRetryPolicy()
	policy.BaseDelay = time.Millisecond
	policy.MaxJitter = time.Millisecond

	client := api.NewClient(baseURL, profile, policy, log)
	return services.NewProcessingService(
		validation.NewValidator(profile, log),
		client,
		log,
		5*time.Millisecond,
	)
}

func Test_Scenario(t *testing.T) {
	req := require.New(t)

	backend := &fakeService{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	service := newStack(t, server.URL)
	ctx := context.Background()

	candidate := domain.UploadCandidate{
		Name:        "report.txt",
		Size:        int64(len("first paragraph\n\nsecond paragraph")),
		ContentType: "text/plain",
		Data:        []byte("first paragraph\n\nsecond paragraph"),
	}

	// 1. Quick flow: validate, submit, normalize.
	result, err := service.ProcessQuick(ctx, candidate, api.SubmitOptions{})
	req.NoError(err)
	req.Equal(domain.StatusCompleted, result.Status)
	req.True(result.Enhanced)
	req.Equal("report.txt", result.Filename)
	req.Equal(2, result.ChunkCount)
	req.Equal(9, result.TotalTokens)
	req.Equal([]int{0, 1}, []int{result.Chunks[0].ID, result.Chunks[1].ID})

	// 2. Full flow: validate, submit, poll to completion, download.
	var progress []float64
	full, err := service.ProcessFull(ctx, candidate, api.SubmitOptions{}, func(v float64) {
		progress = append(progress, v)
	})
	req.NoError(err)
	req.Equal("job-e2e", full.JobID)
	req.Equal("report_processed.jsonl", full.ExportName)
	req.Equal([]float64{50, 100}, progress)

	body, err := service.DownloadExport(ctx, full.DownloadRef)
	req.NoError(err)
	defer body.Close()

	content, err := io.ReadAll(body)
	req.NoError(err)
	req.Contains(string(content), `"chunk_id":1`)
	req.GreaterOrEqual(backend.polls.Load(), int32(2))
}
