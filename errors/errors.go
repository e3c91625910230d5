package errors

import "fmt"

var (
	ErrJobMissingID       = fmt.Errorf("job response carries no job_id")
	ErrPollerStopped      = fmt.Errorf("poller stopped before terminal status")
	ErrEmptyResponseBody  = fmt.Errorf("empty response body")
	ErrUnhealthyService   = fmt.Errorf("service reported unhealthy status")
	ErrRetryBudgetDrained = fmt.Errorf("retry budget exhausted")
)
