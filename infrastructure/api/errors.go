package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"stitch-client/domain"
)

// maxRawErrorLen bounds how much of a non-JSON error body is surfaced.
const maxRawErrorLen = 200

// retryableStatus reports whether re-attempting the same request is
// expected to plausibly succeed: rate limits, request timeouts and
// server-side transient failures.
func retryableStatus(code int) bool {
	if code == http.StatusTooManyRequests || code == http.StatusRequestTimeout {
		return true
	}
	return code >= 500
}

// classifyStatus buckets a terminal HTTP status into an error kind:
// 4xx means the input was rejected (413 included), 5xx means the server
// failed during transformation, anything else is a transport surprise.
func classifyStatus(code int) domain.ErrorKind {
	switch {
	case code >= 400 && code < 500:
		return domain.ErrorKindValidation
	case code >= 500:
		return domain.ErrorKindProcessing
	default:
		return domain.ErrorKindNetwork
	}
}

// errorFromResponse converts a non-2xx response into a ProcessingError,
// extracting the optional detail/message field from a JSON body and
// falling back to truncated raw text.
func errorFromResponse(statusCode int, body []byte) *domain.ProcessingError {
	message := parseErrorBody(body)
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return domain.NewProcessingError(classifyStatus(statusCode), message, map[string]any{
		"status_code": statusCode,
	})
}

func parseErrorBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload["detail"].(string); ok && detail != "" {
			return detail
		}
		if message, ok := payload["message"].(string); ok && message != "" {
			return message
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > maxRawErrorLen {
		raw = raw[:maxRawErrorLen]
	}
	return raw
}
