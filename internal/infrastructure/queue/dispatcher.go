package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 64
	drainTimeout   = 5 * time.Second
)

// ErrStopped is returned by SubmitDecision once the dispatcher is stopped.
var ErrStopped = errors.New("decision dispatcher stopped")

// Dispatcher hands adoption decisions to a sink on a fixed set of workers.
// Decisions for the same request always land on the same worker, so they
// reach the sink in the order they were made. A decision accepted by
// SubmitDecision is delivered even when shutdown starts right after.
type Dispatcher struct {
	workers []chan domain.AdoptionDecision
	sink    ports.DecisionSubmitter
	log     zerolog.Logger

	// mu is held shared by senders and exclusively by Run once, to mark
	// the dispatcher stopped before workers are told to drain.
	mu      sync.RWMutex
	stopped bool
	done    chan struct{} // closed first: wakes senders blocked on a full channel
	quit    chan struct{} // closed once no sender can enqueue any more
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Non-positive sizes use defaults.
func NewDispatcher(numWorkers, buffer int, sink ports.DecisionSubmitter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.AdoptionDecision, numWorkers),
		sink:    sink,
		log:     log.With().Str("component", "decision-dispatcher").Logger(),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AdoptionDecision, buffer)
	}
	return d
}

var _ ports.DecisionSubmitter = (*Dispatcher)(nil)

// Run starts the workers and blocks until ctx is cancelled and every worker
// has drained its channel.
func (d *Dispatcher) Run(ctx context.Context) error {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	<-ctx.Done()

	close(d.done)
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	close(d.quit)

	d.wg.Wait()
	return nil
}

// SubmitDecision queues d for its worker. It blocks while the worker's
// channel is full, until ctx is done or the dispatcher stops.
func (d *Dispatcher) SubmitDecision(ctx context.Context, dec domain.AdoptionDecision) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	idx := d.shardIndex(dec.RequestID)
	select {
	case d.workers[idx] <- dec:
		metrics.DecisionQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return fmt.Errorf("queue decision %s: %w", dec.RequestID, ctx.Err())
	}
}

// shardIndex maps a request id deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(requestID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch chan domain.AdoptionDecision) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-d.quit:
			d.drain(id, ch)
			return
		case dec := <-ch:
			metrics.DecisionQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if ctx.Err() != nil {
				// Run is stopping; finish this one on its own deadline.
				d.deliverDetached(id, dec)
				continue
			}
			d.deliver(ctx, id, dec)
		}
	}
}

func (d *Dispatcher) deliverDetached(id int, dec domain.AdoptionDecision) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	d.deliver(ctx, id, dec)
}

// drain delivers what is still buffered so decisions made just before
// shutdown are not lost. It gets drainTimeout in total.
func (d *Dispatcher) drain(id int, ch chan domain.AdoptionDecision) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case dec := <-ch:
			d.deliver(ctx, id, dec)
		default:
			metrics.DecisionQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, dec domain.AdoptionDecision) {
	if err := d.sink.SubmitDecision(ctx, dec); err != nil {
		metrics.DecisionsTotal.WithLabelValues(string(dec.Status), "failed").Inc()
		d.log.Error().Err(err).
			Str("request_id", dec.RequestID).
			Str("status", string(dec.Status)).
			Int("worker_id", id).
			Msg("adoption decision delivery failed")
		return
	}
	metrics.DecisionsTotal.WithLabelValues(string(dec.Status), "submitted").Inc()
}
