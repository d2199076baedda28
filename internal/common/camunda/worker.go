// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"assessment-workers/internal/common/config"
	"assessment-workers/internal/common/logger"
)

// Workers tracks every job worker opened by the manager so they can be
// closed together on shutdown.
type Workers struct {
	mu      sync.Mutex
	workers map[string]worker.JobWorker
	log     logger.Logger
}

func NewWorkers(log logger.Logger) *Workers {
	return &Workers{workers: make(map[string]worker.JobWorker), log: log}
}

// Start opens a job worker for taskType unless the config disables it.
func (w *Workers) Start(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		w.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	w.mu.Lock()
	w.workers[taskType] = jw
	w.mu.Unlock()

	w.log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
	return true
}

// TaskTypes lists the running workers.
func (w *Workers) TaskTypes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.workers))
	for t := range w.workers {
		out = append(out, t)
	}
	return out
}

// Close stops polling and waits for in-flight jobs, up to timeout.
func (w *Workers) Close(timeout time.Duration) {
	w.mu.Lock()
	workers := w.workers
	w.workers = make(map[string]worker.JobWorker)
	w.mu.Unlock()

	var wg sync.WaitGroup
	for taskType, jw := range workers {
		wg.Add(1)
		go func(taskType string, jw worker.JobWorker) {
			defer wg.Done()
			jw.Close()
			jw.AwaitClose()
			w.log.Info("worker stopped", map[string]interface{}{"taskType": taskType})
		}(taskType, jw)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		w.log.Warn("timed out waiting for workers to stop", map[string]interface{}{"timeout": timeout.String()})
	}
}
