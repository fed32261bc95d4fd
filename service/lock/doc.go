// Package lock provides the mutual-exclusion set guarding the shared exam
// state: one binary lock per critical section family (rubric edits, question
// claiming, exam completion). Locks are jacobsa/syncutil invariant mutexes, so
// tests can enable invariant checking and have the shared state validated on
// every acquire and release.
package lock
