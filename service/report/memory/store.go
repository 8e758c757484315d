// Package memory keeps run reports in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/procman/service/report"
)

// Store implements an in-memory, thread-safe report store
type Store struct {
	reports map[string]*report.Report
	mux     sync.RWMutex
}

var _ report.Store = (*Store)(nil)

func (s *Store) Save(_ context.Context, r *report.Report) error {
	if r == nil {
		return report.ErrNilEntity
	}
	if r.RunID == "" {
		return report.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reports[r.RunID] = r
	return nil
}

func (s *Store) Load(_ context.Context, runID string) (*report.Report, error) {
	if runID == "" {
		return nil, report.ErrInvalidID
	}
	s.mux.RLock()
	defer s.mux.RUnlock()
	r, ok := s.reports[runID]
	if !ok {
		return nil, report.ErrNotFound
	}
	return r, nil
}

func (s *Store) Delete(_ context.Context, runID string) error {
	if runID == "" {
		return report.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.reports[runID]; !ok {
		return report.ErrNotFound
	}
	delete(s.reports, runID)
	return nil
}

// List returns reports ordered by creation time
func (s *Store) List(_ context.Context) ([]*report.Report, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]*report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].CreatedAt.Equal(ret[j].CreatedAt) {
			return ret[i].RunID < ret[j].RunID
		}
		return ret[i].CreatedAt.Before(ret[j].CreatedAt)
	})
	return ret, nil
}

// New creates an empty store
func New() *Store {
	return &Store{reports: map[string]*report.Report{}}
}
