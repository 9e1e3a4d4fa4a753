// Package worker fans history fetches out over a bounded set of workers.
package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/quarterly/internal/adapters/mq/queue"
	"github.com/okian/quarterly/internal/domain/model"
	"github.com/okian/quarterly/pkg/logger"
	"github.com/okian/quarterly/pkg/metrics"
)

const defaultWorkers = 6

// Fetcher loads the round history of one participant.
type Fetcher interface {
	FetchHistory(ctx context.Context, participantID int) ([]model.RoundScore, error)
}

// Result is the outcome of one participant's fetch. Exactly one of History
// and Err is meaningful.
type Result struct {
	Participant model.Participant
	History     []model.RoundScore
	Err         error
}

// Pool runs at most a fixed number of fetches at once.
type Pool struct {
	fetcher Fetcher
	workers int
	logger  logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(fetcher Fetcher, opts ...Option) *Pool {
	p := &Pool{
		fetcher: fetcher,
		workers: defaultWorkers,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("worker")
	return p
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int { return p.workers }

// Collect fetches every participant's history and returns one result per
// participant in input order. Individual failures are reported in the result;
// once ctx ends, the remaining participants fail with the context error.
func (p *Pool) Collect(ctx context.Context, participants []model.Participant) []Result {
	results := make([]Result, len(participants))
	if len(participants) == 0 {
		return results
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(participants)))
	for i, pt := range participants {
		results[i].Participant = pt
		if err := q.Enqueue(ctx, queue.Job{Index: i, Participant: pt}); err != nil {
			results[i].Err = err
		}
	}
	_ = q.Close()

	n := min(p.workers, len(participants))
	metrics.UpdateWorkerCount(n)

	var g errgroup.Group
	g.SetLimit(n)
	for j := range q.Dequeue() {
		g.Go(func() error {
			metrics.AddWorkerActive(1)
			defer metrics.AddWorkerActive(-1)
			results[j.Index].History, results[j.Index].Err = p.fetch(ctx, j.Participant)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn(ctx, "history collection interrupted",
			logger.Int("participants", len(participants)),
			logger.Error(err))
	}

	metrics.UpdateQueueSize(0)
	return results
}

func (p *Pool) fetch(ctx context.Context, pt model.Participant) ([]model.RoundScore, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecordHistoryFailure()
		return nil, err
	}

	start := time.Now()
	history, err := p.fetcher.FetchHistory(ctx, pt.ID)
	if err != nil {
		metrics.RecordHistoryFailure()
		p.logger.Warn(ctx, "history unavailable",
			logger.Int("participant_id", pt.ID),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return nil, err
	}
	p.logger.Debug(ctx, "history fetched",
		logger.Int("participant_id", pt.ID),
		logger.Int("rounds", len(history)))
	return history, nil
}
