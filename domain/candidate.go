// Package domain contains core concepts of the stitch client.
// This file defines upload candidates and their validation outcome.
// Candidates are ephemeral: created at selection time, discarded after
// submission or rejection.
package domain

type UploadCandidate struct {
	Name        string
	Size        int64  `validate:"min=0"`
	ContentType string `validate:"max=255"`
	Data        []byte
}

// ValidationOutcome is the structured result of validating one candidate.
// If IsValid is false, Normalized is nil; if true, Errors is empty
// (Warnings may still be present).
type ValidationOutcome struct {
	IsValid    bool
	Errors     []string
	Warnings   []string
	Normalized *UploadCandidate
}

const KB = 1024
const MB = KB * KB
