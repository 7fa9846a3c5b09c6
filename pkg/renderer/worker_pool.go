package renderer

import (
	"runtime"
	"sync"
)

// TileTask is one unit of work: render samplesThisPass additional samples
// into every pixel of tile, accumulating into the shared PixelStats grid.
type TileTask struct {
	Tile            *Tile
	TaskID          int
	SamplesThisPass int
	PixelStats      [][]PixelStats
}

// TileResult reports the outcome of one TileTask.
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool runs a fixed number of goroutines, each owning its own
// Raytracer, pulling tiles from a shared queue — the CpuCoreCount worker
// pool the tile scheduler is built around.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

func NewWorkerPool(raytracerFactory func() *Raytracer, numWorkers int, queueDepth int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueDepth),
		resultQueue: make(chan TileResult, queueDepth),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		rt := raytracerFactory()
		wp.wg.Add(1)
		go wp.runWorker(rt)
	}

	return wp
}

func (wp *WorkerPool) runWorker(rt *Raytracer) {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		stats := rt.RenderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Random, task.SamplesThisPass)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

func (wp *WorkerPool) SubmitTask(task TileTask) { wp.taskQueue <- task }

func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Stop closes the task queue and waits for every worker to drain it, then
// closes the result queue so GetResult's range/ok loop terminates cleanly.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

func (wp *WorkerPool) NumWorkers() int { return wp.numWorkers }
