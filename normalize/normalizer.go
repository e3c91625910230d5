// Package normalize reconciles the processing service's loosely-typed JSON
// payloads into one canonical ProcessingResult. The service does not fix
// its response shape across processing tiers, so this package is the single
// choke point absorbing that variability: it never panics outward and never
// returns a Go error. Every internal fault becomes a status-error result.
package normalize

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"stitch-client/domain"
)

// Fallback display names, separated so the caller can tell "nothing
// processed yet" apart from "processed but unnamed".
const (
	fallbackNamePending  = "awaiting processing"
	fallbackNameUnnamed  = "untitled document"
	previewMaxChunks     = 3
	previewMaxRunes      = 100
	estimatedCharsPerTok = 4
)

// shape is the structural classification of a raw response.
type shape int

const (
	shapeUnrecognized shape = iota
	shapeBasic
	shapeEnhanced
)

type Normalizer struct {
	log *slog.Logger
	now func() time.Time
}

func NewNormalizer(log *slog.Logger) *Normalizer {
	return &Normalizer{log: log, now: time.Now}
}

// Normalize converts any raw server payload into a ProcessingResult.
// All failure is captured as a status-error result, including panics from
// the extraction steps.
func (n *Normalizer) Normalize(raw map[string]any) (result domain.ProcessingResult) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("Normalization panicked", "cause", r)
			result = n.errorResult(fmt.Sprintf("normalization failed: %v", r))
		}
	}()

	if reason, ok := n.rejectEarly(raw); !ok {
		return n.errorResult(reason)
	}

	var chunks []domain.NormalizedChunk
	var enhanced bool
	switch classify(raw) {
	case shapeEnhanced:
		enhanced, _ = raw["enhanced"].(bool)
		chunks = extractElements(asSlice(raw["chunks"]), nil)
	case shapeBasic:
		chunks = extractElements(asSlice(raw["preview"]), map[string]any{"source": "preview"})
	default:
		chunks = extractBestEffort(raw)
	}

	totalTokens, ok := asInt(raw["total_tokens"])
	if !ok {
		totalTokens = lo.SumBy(chunks, func(c domain.NormalizedChunk) int { return c.TokenCount })
	}

	average := 0
	if len(chunks) > 0 {
		average = int(math.Round(float64(totalTokens) / float64(len(chunks))))
	}

	return domain.ProcessingResult{
		Filename:              resolveFilename(raw, len(chunks)),
		ChunkCount:            len(chunks),
		TotalTokens:           totalTokens,
		AverageTokensPerChunk: average,
		ProcessingTimeMs:      processingTimeMs(raw),
		Preview:               buildPreview(chunks),
		Chunks:                chunks,
		Status:                domain.StatusCompleted,
		Enhanced:              enhanced,
		Metadata: domain.ResultMetadata{
			JobID:       asString(raw["job_id"]),
			ProcessedAt: n.now(),
			FileInfo:    asMap(raw["file_info"]),
			APIMetadata: asMap(raw["metadata"]),
		},
	}
}

// rejectEarly fails a payload that carries neither a resolvable filename
// nor any chunk signal (an explicit count field or a countable array).
func (n *Normalizer) rejectEarly(raw map[string]any) (string, bool) {
	if raw == nil {
		return "empty response", false
	}
	hasFilename := hasResolvableFilename(raw)
	hasChunkSignal := hasCountField(raw) || len(asSlice(raw["chunks"])) > 0 || len(asSlice(raw["preview"])) > 0
	if !hasFilename && !hasChunkSignal {
		return "response carries no filename and no chunk data", false
	}
	return "", true
}

// classify probes the payload structure in fixed priority order.
func classify(raw map[string]any) shape {
	if _, ok := raw["enhanced"].(bool); ok {
		if _, isArray := raw["chunks"].([]any); isArray {
			return shapeEnhanced
		}
	}
	_, hasMessage := raw["message"]
	_, hasFilename := raw["filename"]
	if hasMessage && hasFilename {
		if _, isArray := raw["preview"].([]any); isArray {
			return shapeBasic
		}
	}
	return shapeUnrecognized
}

// extractElements runs the shared element logic over an array: resolve a
// text, estimate tokens, carry metadata, drop empties, re-index densely.
// Elements whose trimmed text is empty do not reserve an id.
func extractElements(elements []any, provenance map[string]any) []domain.NormalizedChunk {
	chunks := make([]domain.NormalizedChunk, 0, len(elements))
	for i, element := range elements {
		text := strings.TrimSpace(elementText(element))
		if text == "" {
			continue
		}

		tokens, ok := elementTokens(element)
		if !ok {
			tokens = int(math.Ceil(float64(len(text)) / estimatedCharsPerTok))
		}

		metadata := map[string]any{"original_index": i}
		for k, v := range provenance {
			metadata[k] = v
		}
		if obj, isObj := element.(map[string]any); isObj {
			for k, v := range asMap(obj["metadata"]) {
				metadata[k] = v
			}
		}

		chunks = append(chunks, domain.NormalizedChunk{
			ID:         len(chunks),
			Text:       text,
			TokenCount: tokens,
			Metadata:   metadata,
		})
	}
	return chunks
}

// extractBestEffort handles unrecognized shapes: the first non-empty array
// among the chunk-like fields is run through the element logic. Finding
// none is not an error by itself.
func extractBestEffort(raw map[string]any) []domain.NormalizedChunk {
	for _, field := range []string{"chunks", "preview", "data"} {
		if elements := asSlice(raw[field]); len(elements) > 0 {
			return extractElements(elements, nil)
		}
	}
	return nil
}

// elementText resolves a chunk's text from a plain string, an object's
// text/content field, or the element's string coercion.
func elementText(element any) string {
	switch v := element.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s
		}
		if s, ok := v["content"].(string); ok {
			return s
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func elementTokens(element any) (int, bool) {
	obj, ok := element.(map[string]any)
	if !ok {
		return 0, false
	}
	if tokens, ok := asInt(obj["token_count"]); ok {
		return tokens, true
	}
	if tokens, ok := asInt(obj["tokens"]); ok {
		return tokens, true
	}
	return 0, false
}

// resolveFilename walks the resolution chain: explicit filename field,
// nested file-info filename, nested file-info name, then a literal
// fallback chosen by whether any chunks survived.
func resolveFilename(raw map[string]any, chunkCount int) string {
	if name := asString(raw["filename"]); name != "" {
		return name
	}
	fileInfo := asMap(raw["file_info"])
	if name := asString(fileInfo["filename"]); name != "" {
		return name
	}
	if name := asString(fileInfo["name"]); name != "" {
		return name
	}
	if chunkCount == 0 {
		return fallbackNamePending
	}
	return fallbackNameUnnamed
}

func buildPreview(chunks []domain.NormalizedChunk) []string {
	preview := make([]string, 0, previewMaxChunks)
	for _, chunk := range chunks {
		if len(preview) == previewMaxChunks {
			break
		}
		runes := []rune(chunk.Text)
		if len(runes) > previewMaxRunes {
			preview = append(preview, string(runes[:previewMaxRunes])+"...")
			continue
		}
		preview = append(preview, chunk.Text)
	}
	return preview
}

// processingTimeMs accepts either an explicit millisecond field or the
// service's second-denominated processing_time.
func processingTimeMs(raw map[string]any) *float64 {
	if ms, ok := asFloat(raw["processing_time_ms"]); ok {
		return &ms
	}
	if seconds, ok := asFloat(raw["processing_time"]); ok {
		ms := seconds * 1000
		return &ms
	}
	return nil
}

func (n *Normalizer) errorResult(message string) domain.ProcessingResult {
	return domain.ProcessingResult{
		Status:  domain.StatusError,
		Error:   message,
		Preview: []string{},
		Chunks:  []domain.NormalizedChunk{},
		Metadata: domain.ResultMetadata{
			ProcessedAt: n.now(),
		},
	}
}

// hasCountField reports an explicit chunk-count signal: a dedicated total
// field or a numeric chunks field (the basic tier reports chunks as a
// count, not an array).
func hasCountField(raw map[string]any) bool {
	if _, ok := asInt(raw["total_chunks"]); ok {
		return true
	}
	if _, ok := asInt(raw["chunk_count"]); ok {
		return true
	}
	if _, ok := asInt(raw["chunks"]); ok {
		return true
	}
	return false
}

func hasResolvableFilename(raw map[string]any) bool {
	if asString(raw["filename"]) != "" {
		return true
	}
	fileInfo := asMap(raw["file_info"])
	return asString(fileInfo["filename"]) != "" || asString(fileInfo["name"]) != ""
}

// JSON decoding yields float64 for every number; test fixtures may carry
// native ints. Both are accepted.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
