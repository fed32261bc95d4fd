package state

import (
	"context"
	"fmt"

	"github.com/viant/marker/model/exam"
)

// RubricLine returns rubric line i. Caller holds the rubric lock.
func (s *Shared) RubricLine(i int) string {
	return s.rubric[i]
}

// Rubric returns a copy of the rubric. Caller holds the rubric lock, or all
// workers have exited.
func (s *Shared) Rubric() exam.Rubric {
	return s.rubric
}

// EditRubricLine replaces rubric line i and persists the whole rubric before
// returning. When persisting fails the in-memory line is restored so that
// memory and backing store stay in step. Caller holds the rubric lock.
func (s *Shared) EditRubricLine(ctx context.Context, i int, text string) error {
	if s.released.Load() {
		return ErrReleased
	}
	if i < 0 || i >= exam.Questions {
		return fmt.Errorf("state: rubric line %d out of range [0,%d)", i, exam.Questions)
	}
	if len(text) > exam.MaxLineLength {
		return fmt.Errorf("state: rubric line %d exceeds %d bytes", i+1, exam.MaxLineLength)
	}
	previous := s.rubric[i]
	s.rubric[i] = text
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.rubric); err != nil {
		s.rubric[i] = previous
		return fmt.Errorf("state: failed to persist rubric line %d: %w", i+1, err)
	}
	return nil
}
