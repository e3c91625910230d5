package domain

type JobState string

const (
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// Terminal reports whether polling must stop for this state.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// JobStatus mirrors the service's job status payload.
// Progress is authoritative server-reported progress in [0, 100].
type JobStatus struct {
	Status      JobState `json:"status"`
	Progress    float64  `json:"progress"`
	DownloadURL string   `json:"download_url"`
	Error       string   `json:"error"`
}
