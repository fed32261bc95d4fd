// Package progress keeps aggregated counters for a single marking run
// (rubric lines reviewed and corrected, questions marked, exams completed).
// The tracker travels in the context so every worker can update it without a
// global registry.
package progress
