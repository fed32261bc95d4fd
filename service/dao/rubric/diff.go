package rubric

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/marker/model/exam"
)

// Diff renders a unified diff between two rubric versions. Identical rubrics
// produce an empty string.
func Diff(before, after exam.Rubric, location string) (string, error) {
	if before == after {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before.String()),
		B:        difflib.SplitLines(after.String()),
		FromFile: location + " (before)",
		ToFile:   location + " (after)",
		Context:  0,
	}
	return difflib.GetUnifiedDiffString(ud)
}
