package exam

import (
	"fmt"
	"strings"
)

const (
	// Questions is the number of rubric lines, and therefore questions, per exam.
	Questions = 5

	// MaxLineLength is the longest rubric line kept in memory (bytes).
	MaxLineLength = 99

	// Sentinel is the reserved student number signalling pool-wide termination.
	Sentinel = 9999
)

// Status represents the marking state of a single question
type Status int32

const (
	NotStarted Status = iota
	InProgress
	Done
)

// String returns status name
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "notStarted"
	case InProgress:
		return "inProgress"
	case Done:
		return "done"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// IsValid returns true if status is one of the known values
func (s Status) IsValid() bool {
	return s >= NotStarted && s <= Done
}

// Record identifies an exam in the marking sequence
type Record struct {
	Index         int    `json:"index" yaml:"index"`
	URL           string `json:"url" yaml:"url"`
	StudentNumber int    `json:"studentNumber" yaml:"studentNumber"`
}

// Rubric is the fixed set of question lines shared by all exams
type Rubric [Questions]string

// String renders the rubric the way it is persisted: one newline-terminated line per question.
func (r Rubric) String() string {
	var b strings.Builder
	for _, line := range r {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Validate checks line bounds
func (r Rubric) Validate() error {
	for i, line := range r {
		if len(line) > MaxLineLength {
			return fmt.Errorf("rubric line %d exceeds %d bytes: %d", i+1, MaxLineLength, len(line))
		}
	}
	return nil
}
