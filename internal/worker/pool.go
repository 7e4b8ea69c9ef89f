package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueTickets = "jobs:tickets"
	QueueCierres = "jobs:cierres"
	QueueBackups = "jobs:backups"

	JobTicket = "ticket"
	JobCierre = "cierre"
	JobBackup = "backup"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job payload. A returned error is retried with backoff
// and, once attempts run out, the job lands in the dead letter queue.
type Handler func(ctx context.Context, payload json.RawMessage) error

var colaPorTipo = map[string]string{
	JobTicket: QueueTickets,
	JobCierre: QueueCierres,
	JobBackup: QueueBackups,
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues them via BRPOP.
// With no Redis client, jobs run in a background goroutine on the same process.
// A nil *Dispatcher accepts and drops every job.
type Dispatcher struct {
	rdb      *redis.Client
	mu       sync.RWMutex
	handlers map[string]Handler
	wg       sync.WaitGroup
	backoff  time.Duration
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb, handlers: make(map[string]Handler), backoff: time.Second}
}

// Handle registers the handler for a job type.
func (d *Dispatcher) Handle(jobType string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[jobType] = h
}

func (d *Dispatcher) handler(jobType string) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers[jobType]
}

// EnqueueTicket schedules the PDF receipt of a committed sale.
func (d *Dispatcher) EnqueueTicket(ctx context.Context, payload TicketJobPayload) error {
	return d.enqueue(ctx, JobTicket, payload)
}

// EnqueueCierre schedules the close report PDF and the owner e-mail.
func (d *Dispatcher) EnqueueCierre(ctx context.Context, payload CierreJobPayload) error {
	return d.enqueue(ctx, JobCierre, payload)
}

// EnqueueBackup schedules a database snapshot.
func (d *Dispatcher) EnqueueBackup(ctx context.Context, payload BackupJobPayload) error {
	return d.enqueue(ctx, JobBackup, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) error {
	if d == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	if d.rdb == nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.process(context.WithoutCancel(ctx), colaPorTipo[jobType], job)
		}()
		return nil
	}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, colaPorTipo[jobType], encoded).Err()
}

// Wait blocks until every in-process job has finished. Jobs sitting in Redis are not awaited.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}

// Start launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func (d *Dispatcher) Start(ctx context.Context, numWorkers int) {
	if d.rdb == nil {
		log.Info().Msg("worker pool: no redis configured, jobs run in-process")
		return
	}
	for i := 0; i < numWorkers; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			d.runWorker(ctx, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	queues := []string{QueueCierres, QueueTickets, QueueBackups}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := d.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			var job Job
			if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
				log.Error().Str("queue", result[0]).Err(err).Msg("failed to unmarshal job")
				continue
			}
			d.process(ctx, result[0], job)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, queue string, job Job) {
	h := d.handler(job.Type)
	if h == nil {
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("no handler registered, job dropped")
		return
	}
	start := time.Now()
	err := withRetry(ctx, maxAttempts, d.backoff, func(int) error { return h(ctx, job.Payload) })
	observarJob(job.Type, err, time.Since(start))
	if err == nil {
		log.Debug().Str("type", job.Type).Msg("job processed")
		return
	}
	log.Error().Err(err).Str("type", job.Type).Str("queue", queue).Msg("job failed")
	if d.rdb != nil {
		aparcar(ctx, d.rdb, queue, job, err, maxAttempts)
	}
}

// withRetry calls fn up to attempts times with exponential backoff.
// Backoff schedule: attempt 1 immediate, then base, 2*base, and so on.
func withRetry(ctx context.Context, attempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := base * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
