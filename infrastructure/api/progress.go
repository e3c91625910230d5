package api

import (
	"math/rand"
	"sync"
	"time"
)

// Cosmetic progress cadence while a submit request is outstanding.
// The values are synthetic pacing for user feedback, not a transfer
// metric: they rise monotonically and stay capped below 100 until the
// request actually succeeds.
const (
	progressInterval  = 500 * time.Millisecond
	progressStart     = 5.0
	progressCap       = 95.0
	progressStepMin   = 5.0
	progressStepSpan  = 10.0
	progressCompleted = 100.0
)

type progressReporter struct {
	onProgress func(float64)
	stop       chan struct{}
	done       chan struct{}
	once       sync.Once
}

// newProgressReporter starts emitting synthetic progress on a fixed
// cadence. A nil callback yields an inert reporter.
func newProgressReporter(onProgress func(float64)) *progressReporter {
	r := &progressReporter{
		onProgress: onProgress,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if onProgress == nil {
		close(r.done)
		return r
	}
	go r.run()
	return r
}

func (r *progressReporter) run() {
	defer close(r.done)
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	value := progressStart
	r.onProgress(value)
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			value += progressStepMin + rand.Float64()*progressStepSpan
			if value > progressCap {
				value = progressCap
			}
			r.onProgress(value)
		}
	}
}

// Stop halts emission on any exit path. Safe to call more than once.
func (r *progressReporter) Stop() {
	r.once.Do(func() {
		if r.onProgress != nil {
			close(r.stop)
		}
	})
	<-r.done
}

// Complete halts emission and reports the final 100 on success.
func (r *progressReporter) Complete() {
	r.Stop()
	if r.onProgress != nil {
		r.onProgress(progressCompleted)
	}
}
