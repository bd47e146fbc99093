package instrument

import (
	"time"

	"go.uber.org/zap"
)

// Payload describes the object a span measures.
type Payload map[string]any

// Finalizer closes a span. It must be called exactly once.
type Finalizer func()

// Instrumenter opens timing spans around resolver work.
type Instrumenter interface {
	Start(name string, payload Payload) Finalizer
}

type nop struct{}

func (nop) Start(string, Payload) Finalizer { return func() {} }

// Nop returns an Instrumenter that records nothing.
func Nop() Instrumenter {
	return nop{}
}

// Zap logs every span with its duration at debug level.
type Zap struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewZap creates an Instrumenter that logs to l.
func NewZap(l *zap.Logger) *Zap {
	if l == nil {
		l = zap.NewNop()
	}
	return &Zap{logger: l, now: time.Now}
}

// Start implements Instrumenter.
func (z *Zap) Start(name string, payload Payload) Finalizer {
	start := z.now()
	return func() {
		fields := make([]zap.Field, 0, len(payload)+2)
		fields = append(fields, zap.String("span", name), zap.Duration("duration", z.now().Sub(start)))
		for k, v := range payload {
			fields = append(fields, zap.Any(k, v))
		}
		z.logger.Debug("instrumentation span", fields...)
	}
}

// Span is a finished or open span captured by a Recorder.
type Span struct {
	Name    string
	Payload Payload
	Closed  bool
}

// Recorder keeps every span in memory. Hosts use it to inspect resolution
// timings and tests use it to check that spans are balanced.
type Recorder struct {
	Spans []*Span
	open  int
}

// Start implements Instrumenter.
func (r *Recorder) Start(name string, payload Payload) Finalizer {
	span := &Span{Name: name, Payload: payload}
	r.Spans = append(r.Spans, span)
	r.open++
	return func() {
		if span.Closed {
			return
		}
		span.Closed = true
		r.open--
	}
}

// Open returns the number of spans started but not finished.
func (r *Recorder) Open() int {
	return r.open
}

// Count returns the number of spans with the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, s := range r.Spans {
		if s.Name == name {
			n++
		}
	}
	return n
}

// Reset discards recorded spans.
func (r *Recorder) Reset() {
	r.Spans = nil
	r.open = 0
}
