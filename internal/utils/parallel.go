package utils

import (
	"context"
	"errors"
	"sync"
)

// Task is one unit of work run by RunParallel.
type Task func(ctx context.Context) error

// RunParallel runs every task concurrently and waits for all of them. The
// returned error joins every task failure.
func RunParallel(ctx context.Context, tasks ...Task) error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task) {
			defer wg.Done()
			errs[index] = t(ctx)
		}(i, task)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// MapBounded applies fn to every item with at most limit calls in flight.
// Results keep the order of items. On failure the context passed to pending
// calls is cancelled and the first error is returned.
func MapBounded[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if limit < 1 {
		limit = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	var (
		mu       sync.Mutex
		firstErr error
	)

	pool := NewWorkerPool(limit)
	for i, item := range items {
		i, item := i, item
		pool.AddTask(func() {
			if ctx.Err() != nil {
				return
			}
			r, err := fn(ctx, item)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			results[i] = r
		})
	}
	pool.Wait()
	pool.Close()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// WorkerPool runs submitted funcs on a fixed number of goroutines.
type WorkerPool struct {
	taskChan chan func()
	wg       sync.WaitGroup
}

func NewWorkerPool(maxWorkers int) *WorkerPool {
	pool := &WorkerPool{
		taskChan: make(chan func(), maxWorkers*2),
	}

	for i := 0; i < maxWorkers; i++ {
		go pool.worker()
	}

	return pool
}

func (p *WorkerPool) worker() {
	for task := range p.taskChan {
		task()
		p.wg.Done()
	}
}

// AddTask blocks while the queue is full.
func (p *WorkerPool) AddTask(task func()) {
	p.wg.Add(1)
	p.taskChan <- task
}

func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Close stops the workers. No tasks may be added afterwards.
func (p *WorkerPool) Close() {
	close(p.taskChan)
}
