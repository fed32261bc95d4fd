package rubric

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/service/dao"
)

// Service loads and persists the rubric file
type Service struct {
	fs       afs.Service
	location string
	URL      string
	mu       sync.Mutex
	saves    int
}

// Load reads exactly exam.Questions lines; lines longer than exam.MaxLineLength
// bytes are truncated. Fewer lines is an error.
func (s *Service) Load(ctx context.Context) (exam.Rubric, error) {
	var ret exam.Rubric
	lines, err := dao.ReadLines(ctx, s.fs, s.location)
	if err != nil {
		return ret, fmt.Errorf("failed to load rubric: %w", err)
	}
	if len(lines) < exam.Questions {
		return ret, fmt.Errorf("failed to load rubric %s: %w: expected %d lines, got %d", s.location, dao.ErrShortRead, exam.Questions, len(lines))
	}
	for i := range ret {
		line := lines[i]
		if len(line) > exam.MaxLineLength {
			line = line[:exam.MaxLineLength]
		}
		ret[i] = line
	}
	return ret, nil
}

// Save rewrites the rubric file in place, one newline-terminated line per question
func (s *Service) Save(ctx context.Context, rubric exam.Rubric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, strings.NewReader(rubric.String())); err != nil {
		return fmt.Errorf("failed to save rubric to %s: %w", s.location, err)
	}
	s.saves++
	return nil
}

// Saves returns number of successful saves
func (s *Service) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Location returns rubric location as supplied by the caller
func (s *Service) Location() string {
	return s.location
}

// New creates a rubric service for location (a local path or afs URL)
func New(fs afs.Service, location string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, location: location, URL: dao.Normalize(location)}
}
