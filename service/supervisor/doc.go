// Package supervisor owns the lifecycle of a marking run: it loads the rubric
// and every exam record, builds the shared exam state and the lock set,
// launches one worker per requested count and joins them before releasing
// the shared state.
package supervisor
