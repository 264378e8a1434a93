package worker

import (
	"context"
	"sync"

	"github.com/Neiron07/pixel-project/internal/logger"

	"github.com/rs/zerolog"
)

type WorkerPool struct {
	workerCount int
	jobChan     chan func(context.Context) error
	wg          sync.WaitGroup
	log         zerolog.Logger
}

func NewWorkerPool(workerCount int) *WorkerPool {
	return &WorkerPool{
		workerCount: workerCount,
		jobChan:     make(chan func(context.Context) error, workerCount*2),
		log:         logger.Get(),
	}
}

func (wp *WorkerPool) Start() {
	wp.log.Info().Int("worker_count", wp.workerCount).Msg("Starting worker pool")

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop closes the job channel and waits until the workers have run every
// job already accepted. Callers must stop submitting before calling Stop.
func (wp *WorkerPool) Stop() {
	wp.log.Info().Msg("Stopping worker pool")
	close(wp.jobChan)
	wp.wg.Wait()
	wp.log.Info().Msg("Worker pool stopped")
}

// Submit blocks until a worker can take the job. Dropping a scan job would
// strand its record in pending forever, so backpressure is pushed to the
// queue consumer instead.
func (wp *WorkerPool) Submit(job func(context.Context) error) {
	wp.jobChan <- job
}

// worker exits only when the channel is closed and empty, never early: a
// job accepted into the pool was already popped off the queue, so it must
// run even during shutdown. Each job gets a fresh context for the same
// reason — the shutdown signal must not cancel its store updates.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	log := wp.log.With().Int("worker_id", id).Logger()
	log.Debug().Msg("Worker started")

	for job := range wp.jobChan {
		if err := job(context.Background()); err != nil {
			log.Error().Err(err).Msg("Job execution failed")
		}
	}

	log.Debug().Msg("Worker stopping due to closed job channel")
}
