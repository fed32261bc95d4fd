package event

import (
	"time"

	"github.com/viant/marker/internal/clock"
)

// Type identifies what happened
type Type string

const (
	WorkStarted       Type = "workStarted"
	ExamLoaded        Type = "examLoaded"
	RubricLineChecked Type = "rubricLineChecked"
	RubricCorrected   Type = "rubricCorrected"
	RubricSaveFailed  Type = "rubricSaveFailed"
	QuestionClaimed   Type = "questionClaimed"
	QuestionMarked    Type = "questionMarked"
	ExamPending       Type = "examPending"
	SentinelSet       Type = "sentinelSet"
	Terminated        Type = "terminated"
	Finished          Type = "finished"
	ProgressUpdated   Type = "progressUpdated"
)

// Context identifies the emitter of an event
type Context struct {
	RunID         string `json:"runID"`
	WorkerID      int    `json:"workerID"` // zero for the supervisor
	ExamIndex     int    `json:"examIndex"`
	StudentNumber int    `json:"studentNumber"`
}

// Event is a structured record emitted by the marking core
type Event struct {
	Context   Context   `json:"context"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Question  int       `json:"question,omitempty"` // zero-based question / rubric line index
	Text      string    `json:"text,omitempty"`
	URL       string    `json:"url,omitempty"`
	Diff      string    `json:"diff,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewEvent creates an event stamped with the current time
func NewEvent(context Context, eventType Type) *Event {
	return &Event{Context: context, Type: eventType, CreatedAt: clock.Now()}
}

// WithQuestion sets question index
func (e *Event) WithQuestion(index int) *Event {
	e.Question = index
	return e
}

// WithText sets text
func (e *Event) WithText(text string) *Event {
	e.Text = text
	return e
}

// WithError sets error
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
