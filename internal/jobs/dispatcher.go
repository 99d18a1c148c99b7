package jobs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/metrics"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/pkg/errors"
)

// Dispatcher submits background jobs to named queues. Submission returns as
// soon as the queue has accepted the job; it never waits for the job to be
// processed.
type Dispatcher interface {
	// Enqueue JSON-encodes payload and submits it to the named queue. Any
	// failure to reach the queue is returned as a *meta.ErrQueueUnavailable.
	Enqueue(ctx context.Context, queueName string, payload interface{}) error
	// Close releases all writers and the underlying factory.
	Close(context.Context) error
}

type dispatcher struct {
	writerFactory queue.WriterFactory
	writers       map[string]queue.Writer
	writersMu     sync.Mutex
}

// NewDispatcher returns a Dispatcher that submits jobs using writers obtained
// from the given queue.WriterFactory. Writers are created lazily, once per
// queue, and reused.
func NewDispatcher(writerFactory queue.WriterFactory) Dispatcher {
	return &dispatcher{
		writerFactory: writerFactory,
		writers:       map[string]queue.Writer{},
	}
}

func (d *dispatcher) Enqueue(
	ctx context.Context,
	queueName string,
	payload interface{},
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		// Not a queue problem; the caller handed us something unencodable.
		return errors.Wrapf(err, "error encoding job for queue %q", queueName)
	}
	if err = d.write(ctx, queueName, body); err != nil {
		metrics.JobsEnqueued.WithLabelValues(
			queueName,
			metrics.EnqueueResultError,
		).Inc()
		return &meta.ErrQueueUnavailable{
			Queue: queueName,
			Err:   err,
		}
	}
	metrics.JobsEnqueued.WithLabelValues(
		queueName,
		metrics.EnqueueResultOK,
	).Inc()
	return nil
}

func (d *dispatcher) write(
	ctx context.Context,
	queueName string,
	body []byte,
) error {
	writer, err := d.getWriter(queueName)
	if err != nil {
		return err
	}
	return writer.Write(ctx, body)
}

func (d *dispatcher) getWriter(queueName string) (queue.Writer, error) {
	d.writersMu.Lock()
	defer d.writersMu.Unlock()
	if writer, ok := d.writers[queueName]; ok {
		return writer, nil
	}
	writer, err := d.writerFactory.NewWriter(queueName)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating writer for queue %q",
			queueName,
		)
	}
	if writer == nil {
		return nil, errors.Errorf("no writer was created for queue %q", queueName)
	}
	d.writers[queueName] = writer
	return writer, nil
}

func (d *dispatcher) Close(ctx context.Context) error {
	d.writersMu.Lock()
	defer d.writersMu.Unlock()
	for queueName, writer := range d.writers {
		if err := writer.Close(ctx); err != nil {
			return errors.Wrapf(
				err,
				"error closing writer for queue %q",
				queueName,
			)
		}
		delete(d.writers, queueName)
	}
	return d.writerFactory.Close(ctx)
}
