// ABOUTME: Background request recording for the logging middleware.
// ABOUTME: Writes happen off the request path; Wait drains them before the store closes.

package logging

import (
	"log/slog"
	"sync"

	"github.com/2389/pocketms/internal/store"
)

// Background wraps a Recorder so LogRequest returns immediately.
type Background struct {
	rec    Recorder
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewBackground(rec Recorder, logger *slog.Logger) *Background {
	if logger == nil {
		logger = slog.Default()
	}
	return &Background{rec: rec, logger: logger}
}

// LogRequest schedules log to be written and never fails; write errors are
// logged instead.
func (b *Background) LogRequest(log *store.RequestLog) error {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.rec.LogRequest(log); err != nil {
			b.logger.Warn("failed to record request", "path", log.Path, "error", err)
		}
	}()
	return nil
}

// Wait blocks until every scheduled write has finished.
func (b *Background) Wait() {
	b.wg.Wait()
}
