package lock

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/jacobsa/syncutil"
)

// Kind identifies one of the three critical section families
type Kind int

const (
	// Rubric serializes rubric edits
	Rubric Kind = iota
	// Question serializes claiming and committing question status
	Question
	// Exam serializes the "fully marked? advance or terminate" decision
	Exam
	kinds
)

// String returns lock name
func (k Kind) String() string {
	switch k {
	case Rubric:
		return "RubricLock"
	case Question:
		return "QuestionLock"
	case Exam:
		return "ExamLock"
	}
	return fmt.Sprintf("lock(%d)", int(k))
}

// FatalFunc handles an unrecoverable lock primitive failure. It must not return
// normally for the run to be considered aborted.
type FatalFunc func(kind Kind, err error)

// DefaultFatal reports the failure and exits the process with status 1.
func DefaultFatal(kind Kind, err error) {
	log.Printf("%v: fatal lock failure: %v", kind, err)
	os.Exit(1)
}

// Set holds three independent binary locks. Each starts unlocked. No method
// acquires more than one lock, and callers must not nest acquisitions.
type Set struct {
	mutexes [kinds]syncutil.InvariantMutex
	holders [kinds]atomic.Int32
	peak    [kinds]atomic.Int32
	count   [kinds]atomic.Int64
	fatal   FatalFunc
}

// New creates a lock set
func New(options ...Option) *Set {
	ret := &Set{fatal: DefaultFatal}
	checks := [kinds]func(){}
	for _, opt := range options {
		opt(ret, &checks)
	}
	for i := range ret.mutexes {
		check := checks[i]
		if check == nil {
			check = func() {}
		}
		ret.mutexes[i] = syncutil.NewInvariantMutex(check)
	}
	return ret
}

// Acquire blocks until the lock is free, then holds it.
func (s *Set) Acquire(kind Kind) {
	s.validate(kind)
	s.mutexes[kind].Lock()
	holders := s.holders[kind].Add(1)
	if holders != 1 {
		s.fatal(kind, fmt.Errorf("acquire observed %d holders", holders))
		return
	}
	s.count[kind].Add(1)
	for {
		peak := s.peak[kind].Load()
		if holders <= peak || s.peak[kind].CompareAndSwap(peak, holders) {
			break
		}
	}
}

// Release frees the lock, waking one waiter if any.
func (s *Set) Release(kind Kind) {
	s.validate(kind)
	if holders := s.holders[kind].Add(-1); holders != 0 {
		s.holders[kind].Add(1)
		s.fatal(kind, fmt.Errorf("release of a lock with %d holders", holders+1))
		return
	}
	s.mutexes[kind].Unlock()
}

// Do runs fn while holding the lock; the lock is released on every exit path,
// including a panic in fn.
func (s *Set) Do(kind Kind, fn func()) {
	s.Acquire(kind)
	defer s.Release(kind)
	fn()
}

// Held reports whether the lock is currently held
func (s *Set) Held(kind Kind) bool {
	return s.holders[kind].Load() > 0
}

// Peak returns the largest number of simultaneous holders observed
func (s *Set) Peak(kind Kind) int {
	return int(s.peak[kind].Load())
}

// Acquisitions returns how many times the lock was acquired
func (s *Set) Acquisitions(kind Kind) int64 {
	return s.count[kind].Load()
}

func (s *Set) validate(kind Kind) {
	if kind < 0 || kind >= kinds {
		s.fatal(kind, fmt.Errorf("unknown lock"))
		panic(fmt.Sprintf("unknown lock %v", kind))
	}
}
