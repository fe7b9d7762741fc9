// internal/progress/reporter.go
package progress

import (
	"time"

	"github.com/johananj/geocaption/internal/logger"
)

// Reporter tracks and reports batch progress
type Reporter struct {
	total          int
	saved          int
	skipped        int
	failed         int
	startTime      time.Time
	lastUpdateTime time.Time
	updateInterval time.Duration
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{
		updateInterval: 2 * time.Second,
	}
}

// Start initializes the reporter with the total number of candidate files
func (r *Reporter) Start(total int) {
	r.total = total
	r.saved = 0
	r.skipped = 0
	r.failed = 0
	r.startTime = time.Now()
	r.lastUpdateTime = time.Now()

	logger.Info("Processing %d files", total)
}

// Saved marks a file as successfully captioned and written
func (r *Reporter) Saved(path string) {
	r.saved++
	r.updateProgress()
}

// Skipped marks a file as skipped
func (r *Reporter) Skipped(path string) {
	r.skipped++
	r.updateProgress()
}

// Failed marks a file as failed
func (r *Reporter) Failed(path string, err error) {
	r.failed++
	r.updateProgress()
}

// Finish logs the final summary
func (r *Reporter) Finish() {
	duration := time.Since(r.startTime)

	logger.Info("Run complete: %d/%d files saved, %d skipped, %d failed in %s",
		r.saved, r.total, r.skipped, r.failed, duration.Round(time.Second))
}

// updateProgress periodically logs overall progress
func (r *Reporter) updateProgress() {
	now := time.Now()
	if now.Sub(r.lastUpdateTime) < r.updateInterval {
		return
	}
	r.lastUpdateTime = now

	processed := r.saved + r.skipped + r.failed
	if processed == 0 || r.total == 0 {
		return
	}

	percentage := float64(processed) / float64(r.total) * 100
	logger.Info("Progress: %.1f%% (%d/%d, %d saved, %d skipped, %d failed)",
		percentage, processed, r.total, r.saved, r.skipped, r.failed)
}
