package domain

import "time"

type ResultStatus string

const (
	StatusCompleted  ResultStatus = "completed"
	StatusError      ResultStatus = "error"
	StatusProcessing ResultStatus = "processing"
)

// NormalizedChunk is one unit of segmented document text.
// ID is a dense 0-based index over the surviving chunks only: chunks
// dropped during normalization do not reserve an id.
type NormalizedChunk struct {
	ID         int
	Text       string
	TokenCount int
	Metadata   map[string]any
}

// ProcessingResult is the canonical output of the normalization layer.
// Invariants: ChunkCount == len(Chunks); AverageTokensPerChunk is
// round(TotalTokens/ChunkCount) when ChunkCount > 0, else 0;
// Status == StatusError implies empty Chunks/Preview and a non-empty Error.
type ProcessingResult struct {
	Filename              string
	ChunkCount            int
	TotalTokens           int
	AverageTokensPerChunk int
	ProcessingTimeMs      *float64
	Preview               []string
	Chunks                []NormalizedChunk
	Status                ResultStatus
	Enhanced              bool
	Error                 string
	Metadata              ResultMetadata
}

type ResultMetadata struct {
	JobID       string
	ProcessedAt time.Time
	FileInfo    map[string]any
	APIMetadata map[string]any
}
