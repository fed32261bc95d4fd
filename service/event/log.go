package event

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/viant/marker/model/exam"
)

// LogSink writes one line per event
type LogSink struct {
	logger  *log.Logger
	verbose bool
}

// Publish formats and writes e. Events only useful for debugging are skipped
// unless the sink is verbose.
func (l *LogSink) Publish(_ context.Context, e *Event) error {
	line := l.format(e)
	if line == "" {
		return nil
	}
	l.logger.Println(line)
	if l.verbose && e.Diff != "" {
		l.logger.Print(strings.TrimRight(e.Diff, "\n"))
	}
	return nil
}

func (l *LogSink) format(e *Event) string {
	who := "Supervisor"
	if e.Context.WorkerID > 0 {
		who = fmt.Sprintf("TA %d", e.Context.WorkerID)
	}
	switch e.Type {
	case WorkStarted:
		return fmt.Sprintf("%s: Working on exam #%d (student %d)", who, e.Context.ExamIndex, e.Context.StudentNumber)
	case ExamLoaded:
		return fmt.Sprintf("%s: Loaded exam %d (student %d) from %s", who, e.Context.ExamIndex, e.Context.StudentNumber, e.URL)
	case RubricLineChecked:
		return fmt.Sprintf("%s: Checking rubric line %d: %s", who, e.Question+1, e.Text)
	case RubricCorrected:
		return fmt.Sprintf("%s: Corrected rubric line %d to: %s", who, e.Question+1, e.Text)
	case RubricSaveFailed:
		return fmt.Sprintf("%s: Failed to save rubric line %d: %s", who, e.Question+1, e.Error)
	case QuestionMarked:
		return fmt.Sprintf("%s: Marked question %d for student %d", who, e.Question+1, e.Context.StudentNumber)
	case SentinelSet:
		return fmt.Sprintf("%s: Exam #%d was the last one, setting student %d", who, e.Context.ExamIndex, exam.Sentinel)
	case Terminated:
		return fmt.Sprintf("%s: student %d reached so stopping.", who, exam.Sentinel)
	case Finished:
		if e.Text != "" {
			return "All TAs finished. " + e.Text
		}
		return "All TAs finished."
	}
	if !l.verbose {
		return ""
	}
	switch e.Type {
	case QuestionClaimed:
		return fmt.Sprintf("%s: Claimed question %d for student %d", who, e.Question+1, e.Context.StudentNumber)
	case ExamPending:
		return fmt.Sprintf("%s: Exam #%d not fully marked yet", who, e.Context.ExamIndex)
	case ProgressUpdated:
		return fmt.Sprintf("%s: Progress: %s", who, e.Text)
	}
	return fmt.Sprintf("%s: %s", who, e.Type)
}

// NewLogSink creates a log sink writing to w; nil means stdout.
func NewLogSink(w io.Writer, verbose bool) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	return &LogSink{logger: log.New(w, "", log.Ltime|log.Lmicroseconds), verbose: verbose}
}
