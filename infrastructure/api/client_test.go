package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"stitch-client/domain"
)

func testProfile() domain.DeviceProfile {
	return domain.DeviceProfile{
		MaxUploadBytes: 100 * domain.MB,
		RequestTimeout: 5 * time.Second,
	}
}

// zeroDelayPolicy counts inter-attempt delays instead of waiting.
func zeroDelayPolicy(sleeps *int32) RetryPolicy {
	policy := DefaultRetryPolicy()
	policy.BaseDelay = time.Millisecond
	policy.MaxJitter = 0
	policy.Sleep = func(ctx context.Context, d time.Duration) error {
		atomic.AddInt32(sleeps, 1)
		return nil
	}
	return policy
}

func newTestClient(baseURL string, sleeps *int32) *Client {
	return NewClient(baseURL, testProfile(), zeroDelayPolicy(sleeps), logs.GetLoggerFromString("ERROR"))
}

func testCandidate() domain.UploadCandidate {
	return domain.UploadCandidate{
		Name:        "doc.txt",
		Size:        12,
		ContentType: "text/plain",
		Data:        []byte("hello world\n"),
	}
}

func TestQuickProcessRetriesTransientFailures(t *testing.T) {
	req := require.New(t)

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","filename":"doc.txt","preview":["hello world"]}`))
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	result, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{})

	req.NoError(err)
	req.Equal(int32(3), atomic.LoadInt32(&attempts))
	// Exactly two inter-attempt delays for two transient failures.
	req.Equal(int32(2), atomic.LoadInt32(&sleeps))
	req.Equal(domain.StatusCompleted, result.Status)
	req.Equal("doc.txt", result.Filename)
	req.Equal(1, result.ChunkCount)
}

func TestQuickProcessTerminalOnClientError(t *testing.T) {
	req := require.New(t)

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"unsupported file"}`))
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	_, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{})

	req.Error(err)
	// A 400 is terminal: one attempt, no delays.
	req.Equal(int32(1), atomic.LoadInt32(&attempts))
	req.Equal(int32(0), atomic.LoadInt32(&sleeps))

	var perr *domain.ProcessingError
	req.ErrorAs(err, &perr)
	req.Equal(domain.ErrorKindValidation, perr.Kind)
	req.False(perr.Recoverable)
	req.Equal("unsupported file", perr.Message)
}

func TestQuickProcessExhaustsRetryBudget(t *testing.T) {
	req := require.New(t)

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	_, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{})

	req.Error(err)
	req.Equal(int32(3), atomic.LoadInt32(&attempts))
	req.Equal(int32(2), atomic.LoadInt32(&sleeps))

	var perr *domain.ProcessingError
	req.ErrorAs(err, &perr)
	req.Equal(domain.ErrorKindProcessing, perr.Kind)
	req.True(perr.Recoverable)
}

func TestQuickProcessTimeoutIsRetryable(t *testing.T) {
	req := require.New(t)

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var sleeps int32
	profile := testProfile()
	profile.RequestTimeout = 20 * time.Millisecond
	client := NewClient(server.URL, profile, zeroDelayPolicy(&sleeps), logs.GetLoggerFromString("ERROR"))

	_, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{})

	req.Error(err)
	// Every attempt timed out and was re-tried until the budget drained.
	req.Equal(int32(3), atomic.LoadInt32(&attempts))

	var perr *domain.ProcessingError
	req.ErrorAs(err, &perr)
	req.Equal(domain.ErrorKindNetwork, perr.Kind)
	req.Contains(perr.Message, "timed out")
}

func TestQuickProcessSendsMultipartAndHints(t *testing.T) {
	req := require.New(t)

	var gotTokenizer, gotMaxTokens, gotDevice, gotRequestID, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.NoError(r.ParseMultipartForm(1 * domain.MB))
		gotTokenizer = r.FormValue("tokenizer")
		gotMaxTokens = r.FormValue("max_tokens")
		gotDevice = r.Header.Get("X-Device-Type")
		gotRequestID = r.Header.Get("X-Request-ID")

		file, header, err := r.FormFile("file")
		req.NoError(err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		gotFile = header.Filename + ":" + string(content)

		_, _ = w.Write([]byte(`{"message":"ok","filename":"doc.txt","preview":["hi"]}`))
	}))
	defer server.Close()

	var sleeps int32
	profile := testProfile()
	profile.IsMobile = true
	client := NewClient(server.URL, profile, zeroDelayPolicy(&sleeps), logs.GetLoggerFromString("ERROR"))

	_, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{})

	req.NoError(err)
	req.Equal("word-estimate", gotTokenizer)
	req.Equal("1024", gotMaxTokens)
	req.Equal("mobile", gotDevice)
	req.NotEmpty(gotRequestID)
	req.Equal("doc.txt:hello world\n", gotFile)
}

func TestQuickProcessReportsSyntheticProgress(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok","filename":"doc.txt","preview":["hi"]}`))
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	var mu = make(chan float64, 64)
	_, err := client.QuickProcess(context.Background(), testCandidate(), SubmitOptions{
		OnProgress: func(v float64) {
			select {
			case mu <- v:
			default:
			}
		},
	})
	req.NoError(err)
	close(mu)

	var values []float64
	for v := range mu {
		values = append(values, v)
	}
	req.NotEmpty(values)
	// Monotone, capped below 100 until the final success marker.
	for i := 1; i < len(values); i++ {
		req.GreaterOrEqual(values[i], values[i-1])
	}
	req.Equal(100.0, values[len(values)-1])
	for _, v := range values[:len(values)-1] {
		req.Less(v, 100.0)
	}
}

func TestProcessFull(t *testing.T) {
	t.Run("Returns the job handle", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req.NoError(r.ParseMultipartForm(1 * domain.MB))
			req.Equal("paragraph", r.FormValue("chunk_method"))
			req.Equal("false", r.FormValue("preserve_structure"))
			req.Equal("jsonl", r.FormValue("export_format"))
			_, _ = w.Write([]byte(`{"job_id":"job-123"}`))
		}))
		defer server.Close()

		var sleeps int32
		client := newTestClient(server.URL, &sleeps)

		jobID, err := client.ProcessFull(context.Background(), testCandidate(), SubmitOptions{})
		req.NoError(err)
		req.Equal("job-123", jobID)
	})

	t.Run("Missing job id is a processing error", func(t *testing.T) {
		req := require.New(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		var sleeps int32
		client := newTestClient(server.URL, &sleeps)

		_, err := client.ProcessFull(context.Background(), testCandidate(), SubmitOptions{})
		req.Error(err)

		var perr *domain.ProcessingError
		req.ErrorAs(err, &perr)
		req.Equal(domain.ErrorKindProcessing, perr.Kind)
	})
}

func TestJobStatus(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/v1/jobs/job-9/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"processing","progress":42}`))
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	status, err := client.JobStatus(context.Background(), "job-9")
	req.NoError(err)
	req.Equal(domain.JobProcessing, status.Status)
	req.Equal(42.0, status.Progress)
	req.False(status.Status.Terminal())
}

func TestHealth(t *testing.T) {
	t.Run("Healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/health", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2025-01-01T00:00:00Z"}`))
		}))
		defer server.Close()

		var sleeps int32
		require.NoError(t, newTestClient(server.URL, &sleeps).Health(context.Background()))
	})

	t.Run("Unhealthy status field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
		}))
		defer server.Close()

		var sleeps int32
		require.Error(t, newTestClient(server.URL, &sleeps).Health(context.Background()))
	})
}

func TestDownloadResolvesRelativeRef(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/v1/processing/download/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"text":"chunk","chunk_id":1,"tokens":2,"metadata":{}}` + "\n"))
	}))
	defer server.Close()

	var sleeps int32
	client := newTestClient(server.URL, &sleeps)

	body, err := client.Download(context.Background(), "/api/v1/processing/download/abc")
	req.NoError(err)
	defer body.Close()

	content, err := io.ReadAll(body)
	req.NoError(err)
	req.Contains(string(content), `"chunk_id":1`)
}

func TestErrorFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.ErrorKind
		wantMsg  string
	}{
		{"Detail field", 400, `{"detail":"bad input"}`, domain.ErrorKindValidation, "bad input"},
		{"Message field", 422, `{"message":"cannot parse"}`, domain.ErrorKindValidation, "cannot parse"},
		{"Payload too large", 413, `{"detail":"too big"}`, domain.ErrorKindValidation, "too big"},
		{"Server failure", 500, `{"detail":"boom"}`, domain.ErrorKindProcessing, "boom"},
		{"Raw text fallback", 502, "upstream exploded", domain.ErrorKindProcessing, "upstream exploded"},
		{"Empty body", 500, "", domain.ErrorKindProcessing, "request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := errorFromResponse(tt.status, []byte(tt.body))
			require.Equal(t, tt.wantKind, perr.Kind)
			require.Equal(t, tt.wantMsg, perr.Message)
			require.Equal(t, tt.status, perr.Details["status_code"])
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	retryable := []int{408, 429, 500, 502, 503}
	terminal := []int{400, 401, 403, 404, 413, 422}

	for _, code := range retryable {
		require.True(t, retryableStatus(code), "expected %d to be retryable", code)
	}
	for _, code := range terminal {
		require.False(t, retryableStatus(code), "expected %d to be terminal", code)
	}
}

func TestBackoffGrowsExponentially(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.MaxJitter = 0

	require.Equal(t, policy.BaseDelay, policy.Backoff(1))
	require.Equal(t, 2*policy.BaseDelay, policy.Backoff(2))
	require.Equal(t, 4*policy.BaseDelay, policy.Backoff(3))
}
