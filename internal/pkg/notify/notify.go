// Package notify delivers operator notifications. Delivery is fire-and-forget:
// a failed send is logged and counted, never retried, never reported back.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nailbooker/nailbooker/internal/pkg/metrics"
)

var ErrQueueFull = errors.New("notification queue full")

// Message is a channel-neutral notification.
type Message struct {
	Subject string
	Body    string
}

// Channel is one delivery transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans messages out to every channel from a background worker.
type Dispatcher struct {
	channels    []Channel
	queue       chan Message
	sendTimeout time.Duration
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewDispatcher starts the worker. queueSize bounds pending messages.
func NewDispatcher(channels []Channel, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	d := &Dispatcher{
		channels:    channels,
		queue:       make(chan Message, queueSize),
		sendTimeout: 15 * time.Second,
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Notify queues msg without blocking.
func (d *Dispatcher) Notify(_ context.Context, msg Message) error {
	if len(d.channels) == 0 {
		return nil
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for queued ones to be attempted.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		for _, ch := range d.channels {
			d.deliver(ch, msg)
		}
	}
}

func (d *Dispatcher) deliver(ch Channel, msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := ch.Send(ctx, msg); err != nil {
		metrics.IncNotification(ch.Name(), "failed")
		log.Error().Err(err).
			Str("channel", ch.Name()).
			Str("subject", msg.Subject).
			Msg("Failed to send notification")
		return
	}
	metrics.IncNotification(ch.Name(), "sent")
}
