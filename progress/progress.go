package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by a worker.
type Delta struct {
	Reviewed  int
	Corrected int
	Claimed   int
	Marked    int
	Exams     int
}

// Progress keeps aggregated counters for one marking run. It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	ReviewedLines  int
	CorrectedLines int
	ClaimedTasks   int
	MarkedTasks    int
	CompletedExams int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. If an onChange callback is registered it
// is invoked with a copy of the tracker outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.ReviewedLines += d.Reviewed
	p.CorrectedLines += d.Corrected
	p.ClaimedTasks += d.Claimed
	p.MarkedTasks += d.Marked
	p.CompletedExams += d.Exams
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:          p.RunID,
		StartedAt:      p.StartedAt,
		ReviewedLines:  p.ReviewedLines,
		CorrectedLines: p.CorrectedLines,
		ClaimedTasks:   p.ClaimedTasks,
		MarkedTasks:    p.MarkedTasks,
		CompletedExams: p.CompletedExams,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and returns both.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
