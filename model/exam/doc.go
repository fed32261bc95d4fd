// Package exam defines the marking domain types: question status, exam
// records, the five-line rubric and the rubric correction rule.
package exam
