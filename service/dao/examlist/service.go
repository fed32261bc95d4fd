package examlist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/service/dao"
)

// Service reads the exam list and the exam files it points to
type Service struct {
	fs afs.Service
}

// List returns exam locations in marking order; blank lines are ignored.
func (s *Service) List(ctx context.Context, location string) ([]string, error) {
	lines, err := dao.ReadLines(ctx, s.fs, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam list: %w", err)
	}
	var ret []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		ret = append(ret, line)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("failed to load exam list %s: %w: no exams listed", location, dao.ErrShortRead)
	}
	return ret, nil
}

// StudentNumber reads the student number from the first line of an exam file
func (s *Service) StudentNumber(ctx context.Context, location string) (int, error) {
	lines, err := dao.ReadLines(ctx, s.fs, location)
	if err != nil {
		return 0, fmt.Errorf("failed to load exam: %w", err)
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("failed to load exam %s: %w: missing student number", location, dao.ErrShortRead)
	}
	number, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return 0, fmt.Errorf("failed to load exam %s: %w: %v", location, dao.ErrInvalidRecord, err)
	}
	if number == exam.Sentinel {
		return 0, fmt.Errorf("failed to load exam %s: %w: student number %d is reserved", location, dao.ErrInvalidRecord, exam.Sentinel)
	}
	return number, nil
}

// Records loads the exam list and every exam's student number up front, so
// that a missing or malformed exam fails the run before any worker starts.
func (s *Service) Records(ctx context.Context, listLocation string) ([]exam.Record, error) {
	locations, err := s.List(ctx, listLocation)
	if err != nil {
		return nil, err
	}
	ret := make([]exam.Record, 0, len(locations))
	for i, location := range locations {
		number, err := s.StudentNumber(ctx, location)
		if err != nil {
			return nil, err
		}
		ret = append(ret, exam.Record{Index: i, URL: location, StudentNumber: number})
	}
	return ret, nil
}

// New creates exam list service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
