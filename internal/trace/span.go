package trace

import "time"

// Span tracks a begin/end pair around a logical operation.
type Span struct {
	tracer Tracer
	name   string
	start  time.Time
	ended  bool
}

// Begin starts a span at LevelPass. The returned span is safe to End on a
// nil or disabled tracer.
func Begin(tr Tracer, name string) *Span {
	s := &Span{tracer: tr, name: name, start: time.Now()}
	if tr != nil && tr.Enabled() {
		tr.Emit(&Event{
			Seq:   NextSeq(),
			Time:  s.start,
			Kind:  KindSpanBegin,
			Level: LevelPass,
			Name:  name,
		})
	}
	return s
}

// End emits the closing event exactly once.
func (s *Span) End() {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	if s.tracer != nil && s.tracer.Enabled() {
		s.tracer.Emit(&Event{
			Seq:    NextSeq(),
			Time:   time.Now(),
			Kind:   KindSpanEnd,
			Level:  LevelPass,
			Name:   s.name,
			Detail: time.Since(s.start).String(),
		})
	}
}
