package vecraster

import "github.com/gogpu/vecraster/internal/parallel"

// WorkerPool distributes per-layer and per-pixel work across goroutines
// with work-stealing between queues (§5). A pipeline configured without
// one via WithWorkerPool creates a private pool sized to GOMAXPROCS and
// closes it when processing completes.
type WorkerPool = parallel.WorkerPool

// NewWorkerPool creates a WorkerPool with the given number of workers. If
// workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	return parallel.NewWorkerPool(workers)
}
