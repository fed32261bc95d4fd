package state

import (
	"fmt"

	"github.com/viant/marker/model/exam"
)

// Status returns status of question i
func (s *Shared) Status(i int) exam.Status {
	return exam.Status(s.statuses[i].Load())
}

// Statuses returns a snapshot of all question statuses
func (s *Shared) Statuses() [exam.Questions]exam.Status {
	var ret [exam.Questions]exam.Status
	for i := range s.statuses {
		ret[i] = s.Status(i)
	}
	return ret
}

// ClaimNext moves the lowest NotStarted question to InProgress and returns its
// index. It returns false when no question is left to claim.
// Caller holds the question lock.
func (s *Shared) ClaimNext() (int, bool) {
	if s.released.Load() {
		return -1, false
	}
	for i := range s.statuses {
		if exam.Status(s.statuses[i].Load()) == exam.NotStarted {
			s.statuses[i].Store(int32(exam.InProgress))
			return i, true
		}
	}
	return -1, false
}

// Commit moves a claimed question to Done. Caller holds the question lock.
func (s *Shared) Commit(i int) error {
	if s.released.Load() {
		return ErrReleased
	}
	if i < 0 || i >= exam.Questions {
		return fmt.Errorf("state: question %d out of range [0,%d)", i, exam.Questions)
	}
	if status := s.Status(i); status != exam.InProgress {
		return fmt.Errorf("%w: question %d is %v", ErrNotClaimed, i+1, status)
	}
	s.statuses[i].Store(int32(exam.Done))
	return nil
}

// AllDone reports whether every question of the current exam is Done.
// Caller holds the exam lock.
func (s *Shared) AllDone() bool {
	for i := range s.statuses {
		if exam.Status(s.statuses[i].Load()) != exam.Done {
			return false
		}
	}
	return true
}
