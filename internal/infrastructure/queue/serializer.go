package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 64
)

type job struct {
	ctx  context.Context
	task func(context.Context) error
	done chan error
}

// Serializer routes submissions to a fixed set of workers using consistent
// hashing on the source account, guaranteeing per-account ordering. Two
// concurrent transactions from the same account would otherwise race for the
// same sequence number and one would bounce.
type Serializer struct {
	workers []chan job
	log     zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Serializer) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
}

// Do runs task on the worker responsible for key and waits for it to finish.
// Tasks sharing a key never overlap; tasks with different keys usually land
// on different workers and run concurrently.
func (s *Serializer) Do(ctx context.Context, key string, task func(context.Context) error) error {
	j := job{ctx: ctx, task: task, done: make(chan error, 1)}

	select {
	case s.workers[s.shardIndex(key)] <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(s.workers)
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			err := j.task(j.ctx)
			if err != nil {
				s.log.Debug().Err(err).Int("worker_id", id).Msg("serialized task failed")
			}
			j.done <- err
		}
	}
}
