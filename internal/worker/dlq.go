package worker

// dlq.go
// A job that fails every attempt is parked in dlq:{queue}, newest first, so the
// shop owner can see why a ticket or a close report never came out.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix = "dlq:"

	// dlqMax caps each dead letter list; older entries are trimmed.
	dlqMax = 200
)

type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339, UTC
	Attempts      int             `json:"attempts"`
}

// aparcar pushes job onto its dead letter list. A Redis failure here is only
// logged: the job is already lost to the caller either way.
func aparcar(ctx context.Context, rdb *redis.Client, queue string, job Job, causa error, intentos int) {
	entry, err := json.Marshal(DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        causa.Error(),
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      intentos,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: encode entry")
		return
	}

	key := DLQPrefix + queue
	_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, entry)
		p.LTrim(ctx, key, 0, dlqMax-1)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: push")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Str("reason", causa.Error()).
		Int("attempts", intentos).
		Msg("dlq: job parked")
}

// DLQLength returns the number of parked jobs for queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// DLQPendientes sums the parked jobs across every queue; the health check reports it.
func DLQPendientes(ctx context.Context, rdb *redis.Client) (int64, error) {
	cmds, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, q := range []string{QueueTickets, QueueCierres, QueueBackups} {
			p.LLen(ctx, DLQPrefix+q)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range cmds {
		total += c.(*redis.IntCmd).Val()
	}
	return total, nil
}
