// Package model holds the data the marking run operates on. Package exam
// defines rubric lines, question statuses and exam records; package state
// holds the single block of mutable data shared by every worker.
package model
