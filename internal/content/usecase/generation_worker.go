package usecase

import (
	"context"
	"sync"
	"time"

	"tarot-backend/internal/content/domain"

	"go.uber.org/zap"
)

const (
	defaultWorkerCount = 3
	defaultQueueSize   = 200
	jobTimeout         = 2 * time.Minute
)

// GenerationJob asks for the meaning of one card in one locale
type GenerationJob struct {
	CardID string
	Locale string
}

// CardGenerator produces and stores a card meaning
type CardGenerator interface {
	GenerateCard(ctx context.Context, cardID, locale string) (*domain.CardContent, error)
}

// GenerationWorker handles background card content generation
type GenerationWorker struct {
	generator   CardGenerator
	jobQueue    chan GenerationJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	stopped     bool
	mu          sync.Mutex
	logger      *zap.Logger
}

// NewGenerationWorker creates a new generation worker
func NewGenerationWorker(workerCount, queueSize int, logger *zap.Logger) *GenerationWorker {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GenerationWorker{
		jobQueue:    make(chan GenerationJob, queueSize), // Buffered channel
		workerCount: workerCount,
		logger:      logger.Named("generation_worker"),
	}
}

// SetGenerator sets the usecase that does the generation
func (w *GenerationWorker) SetGenerator(g CardGenerator) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generator = g
}

// Start starts the workers
func (w *GenerationWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.stopped {
		return
	}

	for i := 0; i < w.workerCount; i++ {
		w.workerWg.Add(1)
		go w.worker(i)
	}
	w.started = true
	w.logger.Info("started workers", zap.Int("count", w.workerCount))
}

// Stop stops all workers after the queued jobs are drained
func (w *GenerationWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.jobQueue)
	w.mu.Unlock()

	w.workerWg.Wait()
	w.logger.Info("all workers stopped")
}

// worker processes generation jobs from the queue
func (w *GenerationWorker) worker(id int) {
	defer w.workerWg.Done()

	for job := range w.jobQueue {
		w.processJob(job)
	}

	w.logger.Debug("worker stopped", zap.Int("worker", id))
}

func (w *GenerationWorker) processJob(job GenerationJob) {
	w.mu.Lock()
	generator := w.generator
	w.mu.Unlock()
	if generator == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := generator.GenerateCard(ctx, job.CardID, job.Locale); err != nil {
		w.logger.Warn("generation failed", zap.String("card_id", job.CardID), zap.String("locale", job.Locale), zap.Error(err))
		return
	}
	w.logger.Info("generated card content", zap.String("card_id", job.CardID), zap.String("locale", job.Locale))
}

// QueueJob adds a single job to the queue (non-blocking)
func (w *GenerationWorker) QueueJob(job GenerationJob) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return false
	}
	select {
	case w.jobQueue <- job:
		return true
	default:
		return false // Queue full
	}
}
