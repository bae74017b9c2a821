package runtime

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/petermattis/goid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Stats are cumulative counters for one RuntimeContext. They back the
// Prometheus metrics and give tests a dependency-free view of scheduler
// behavior.
type Stats struct {
	Flushes            uint64
	Schedules          uint64
	ComponentUpdates   uint64
	RenderCallbackRuns uint64
	StoreWrites        uint64
	OutrosStarted      uint64
}

// RuntimeContext owns all scheduler and transition state. There are no
// package-level queues or flags: every component instance holds a
// reference to the context it was created in, which keeps the "one active
// runtime" invariant explicit instead of hiding it in globals.
type RuntimeContext struct {
	id     string
	logger *slog.Logger
	tracer trace.Tracer
	base   context.Context

	metrics *Metrics
	debug   bool
	gid     int64

	// Scheduler state. flushing is the sole reentrancy guard.
	flushing         bool
	flushScheduled   bool
	dirtyComponents  []*ComponentInstance
	bindingCallbacks []func()
	renderCallbacks  []renderCallback
	flushCallbacks   []func()
	seenCallbacks    map[uint64]struct{}
	nextCallbackID   uint64

	// currentComponent is set during component initialization and update,
	// and gates the lifecycle registration functions.
	currentComponent *ComponentInstance

	// Transition group arena. current indexes groups; -1 means top level.
	groups       []outroGroup
	current      int
	outroing     map[Fragment]struct{}
	outroGroupOf map[Fragment]int

	stats Stats
}

// renderCallback pairs a callback with a stable identity so the per-flush
// seen set can suppress repeats across drain passes.
type renderCallback struct {
	id uint64
	fn func()
}

// Option configures a RuntimeContext.
type Option func(*RuntimeContext)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(rt *RuntimeContext) { rt.logger = l }
}

// WithMetrics attaches Prometheus metrics to the runtime.
func WithMetrics(m *Metrics) Option {
	return func(rt *RuntimeContext) { rt.metrics = m }
}

// WithDebug enables dev-time validation, including the cross-goroutine
// use check.
func WithDebug(debug bool) Option {
	return func(rt *RuntimeContext) { rt.debug = debug }
}

// WithTracerName overrides the OpenTelemetry tracer name (default "fray").
func WithTracerName(name string) Option {
	return func(rt *RuntimeContext) { rt.tracer = otel.Tracer(name) }
}

// New creates a RuntimeContext owned by the calling goroutine.
func New(opts ...Option) *RuntimeContext {
	rt := &RuntimeContext{
		id:            uuid.NewString(),
		logger:        slog.Default(),
		tracer:        otel.Tracer("fray"),
		base:          context.Background(),
		current:       -1,
		seenCallbacks: make(map[uint64]struct{}),
		outroing:      make(map[Fragment]struct{}),
		outroGroupOf:  make(map[Fragment]int),
		gid:           goid.Get(),
	}

	for _, opt := range opts {
		opt(rt)
	}

	rt.logger = rt.logger.With("runtime_id", rt.id)
	return rt
}

// ID returns the unique identifier for this runtime.
func (rt *RuntimeContext) ID() string { return rt.id }

// Logger returns the runtime logger.
func (rt *RuntimeContext) Logger() *slog.Logger { return rt.logger }

// Stats returns a snapshot of the runtime's counters.
func (rt *RuntimeContext) Stats() Stats { return rt.stats }

// IsFlushing reports whether a flush drain is in progress.
func (rt *RuntimeContext) IsFlushing() bool { return rt.flushing }

// FlushScheduled reports whether a flush is pending.
func (rt *RuntimeContext) FlushScheduled() bool { return rt.flushScheduled }

// checkThread enforces the single-goroutine contract in debug mode.
func (rt *RuntimeContext) checkThread() {
	if !rt.debug {
		return
	}
	if g := goid.Get(); g != rt.gid {
		failf(errWrongGoroutine, "runtime used from goroutine %d, owned by goroutine %d", g, rt.gid)
	}
}
