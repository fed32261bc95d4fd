package state

import (
	"fmt"

	"github.com/viant/marker/model/exam"
)

// The check functions below are attached to the lock set and run on every
// acquire and release while invariant checking is enabled. They panic on
// violation.

// CheckRubric verifies rubric line bounds.
func (s *Shared) CheckRubric() {
	if err := s.rubric.Validate(); err != nil {
		panic(fmt.Sprintf("rubric invariant: %v", err))
	}
}

// CheckQuestions verifies that every status holds a known value.
func (s *Shared) CheckQuestions() {
	for i := range s.statuses {
		if status := s.Status(i); !status.IsValid() {
			panic(fmt.Sprintf("question invariant: question %d has %v", i+1, status))
		}
	}
}

// CheckExam verifies the exam index range and the sentinel.
func (s *Shared) CheckExam() {
	current := s.CurrentExam()
	if current < 0 || current >= len(s.records) {
		panic(fmt.Sprintf("exam invariant: index %d out of range [0,%d)", current, len(s.records)))
	}
	student := s.StudentNumber()
	if student != exam.Sentinel && student != s.records[current].StudentNumber {
		panic(fmt.Sprintf("exam invariant: student %d does not match exam %d (%d)", student, current, s.records[current].StudentNumber))
	}
}
