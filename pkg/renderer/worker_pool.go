package renderer

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row    int    // Image row, 0 at the top
	Pixels []byte // The row's slice of the pixel buffer, owned by the task
	Seed   int64  // Seed for the row's private random generator
	TaskID int    // For deterministic ordering
}

// RowResult contains the result from rendering a row
type RowResult struct {
	TaskID int
	Row    int
	Stats  RowStats
	Error  error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	completed   atomic.Int64
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	renderer    *RowRenderer
	taskQueue   chan RowTask
	resultQueue chan RowResult
	pool        *WorkerPool // Reference to parent pool for progress accounting
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU. maxTasks sizes the queues so that
// submitting every task up front never blocks.
func NewWorkerPool(rowRenderer *RowRenderer, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    rowRenderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			pool:        wp,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. Workers stop rendering once ctx is done and report
// the remaining tasks as cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of rows rendered so far; safe to call at any time
func (wp *WorkerPool) Completed() int {
	return int(wp.completed.Load())
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Cancellation is checked between rows, never inside one
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{TaskID: task.TaskID, Row: task.Row, Error: err}
			continue
		}

		sampler := core.NewSeededSampler(task.Seed)
		stats := w.renderer.RenderRow(task.Row, task.Pixels, sampler)
		w.pool.completed.Add(1)

		w.resultQueue <- RowResult{
			TaskID: task.TaskID,
			Row:    task.Row,
			Stats:  stats,
		}
	}
}
