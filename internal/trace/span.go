package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// seq упорядочивает события между горутинами ParseDir; spanIDs выдаёт ID спанов и точек.
var seq, spanIDs atomic.Uint64

// goroutineID parses the id out of "goroutine 123 [running]:".
// Parallel directory workers are told apart by it in the trace.
func goroutineID() uint64 {
	var buf [64]byte
	head := buf[:runtime.Stack(buf[:], false)]
	head, ok := bytes.CutPrefix(head, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(head, ' '); i >= 0 {
		head = head[:i]
	}
	gid, err := strconv.ParseUint(string(head), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin/end pair. A Span from a disabled tracer or a
// filtered scope is inert: End and WithExtra do nothing and ID is 0.
type Span struct {
	tracer  Tracer
	proto   Event // общие поля begin и end
	started time.Time
}

func inert() *Span { return &Span{tracer: Nop} }

func passes(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin emits a begin event and returns the span; parent is 0 for a root.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !passes(t, scope) {
		return inert()
	}
	s := &Span{
		tracer: t,
		proto: Event{
			Scope:    scope,
			SpanID:   spanIDs.Add(1),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
		started: time.Now(),
	}
	ev := s.proto
	ev.Time, ev.Seq, ev.Kind = s.started, seq.Add(1), KindSpanBegin
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and the collected extras.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	ev := s.proto
	ev.Time, ev.Seq, ev.Kind, ev.Detail = time.Now(), seq.Add(1), KindSpanEnd, detail
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.proto.Extra == nil {
		s.proto.Extra = make(map[string]string)
	}
	s.proto.Extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.proto.SpanID
}

// Point emits an instant event, e.g. one parsed band or a failed cache write.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !passes(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   spanIDs.Add(1),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
