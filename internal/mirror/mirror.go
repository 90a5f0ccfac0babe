package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"home_climate/internal/logger"

	"github.com/google/uuid"
)

// Command types pushed to the remote command log.
const (
	CommandManualUpdate     = "manual_update"
	CommandAutomationUpdate = "automation_update"
	CommandActuatorUpdate   = "actuator_update"
)

// Fields is a flat JSON object sent to a sink.
type Fields = map[string]any

// Sink is one remote store that receives mirrored state.
type Sink interface {
	Name() string
	// PutReading overwrites the remote "latest reading" document.
	PutReading(ctx context.Context, payload Fields) error
	// PostCommand appends one command record remotely.
	PostCommand(ctx context.Context, payload Fields) error
}

type jobKind string

const (
	jobReading jobKind = "reading"
	jobCommand jobKind = "command"
)

type job struct {
	kind    jobKind
	payload Fields
}

// Options tune the dispatcher queue and per-job deadline.
type Options struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

const (
	defaultWorkers   = 1
	defaultQueueSize = 64
	defaultTimeout   = 5 * time.Second
)

// Dispatcher fans mirror jobs out to sinks on background workers. Push
// methods never block the caller: a full queue drops the job. Failures are
// logged and never retried.
type Dispatcher struct {
	sinks   []Sink
	jobs    chan job
	workers int
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
	wg      sync.WaitGroup
}

func NewDispatcher(opts Options, log *logger.Logger, sinks ...Sink) *Dispatcher {
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Dispatcher{
		sinks:   sinks,
		jobs:    make(chan job, opts.QueueSize),
		workers: opts.Workers,
		timeout: opts.Timeout,
		log:     logger.OrNop(log),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run starts the workers and blocks until ctx is canceled and they exit.
// Jobs still queued at shutdown are discarded.
func (d *Dispatcher) Run(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
	<-ctx.Done()
	d.wg.Wait()
}

// PushReading mirrors the latest telemetry fields. A ts is added if absent.
func (d *Dispatcher) PushReading(fields Fields) {
	payload := copyFields(fields, 1)
	if _, ok := payload["ts"]; !ok {
		payload["ts"] = d.now().UTC().Unix()
	}
	d.enqueue(job{kind: jobReading, payload: payload})
}

// PushCommand mirrors a control change tagged with commandType and send time.
func (d *Dispatcher) PushCommand(commandType string, fields Fields) {
	payload := copyFields(fields, 3)
	payload["type"] = commandType
	payload["ts"] = d.now().UTC().Unix()
	payload["id"] = d.newID()
	d.enqueue(job{kind: jobCommand, payload: payload})
}

func (d *Dispatcher) enqueue(j job) {
	if len(d.sinks) == 0 {
		return
	}
	select {
	case d.jobs <- j:
	default:
		d.log.Warnw("mirror_queue_full", "kind", j.kind, "dropped", true)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			for _, s := range d.sinks {
				d.deliver(ctx, s, j)
			}
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s Sink, j job) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("mirror_sink_panic", "sink", s.Name(), "kind", j.kind, "panic", fmt.Sprint(r))
		}
	}()

	var err error
	switch j.kind {
	case jobReading:
		err = s.PutReading(ctx, j.payload)
	case jobCommand:
		err = s.PostCommand(ctx, j.payload)
	}
	if err != nil {
		d.log.Warnw("mirror_push_failed", "sink", s.Name(), "kind", j.kind, "err", err)
		return
	}
	d.log.Debugw("mirror_pushed", "sink", s.Name(), "kind", j.kind)
}

// copyFields detaches the payload from the caller's map.
func copyFields(in Fields, extra int) Fields {
	out := make(Fields, len(in)+extra)
	for k, v := range in {
		out[k] = v
	}
	return out
}
