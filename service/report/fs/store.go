// Package fs keeps run reports as JSON files under an afs base URL.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/viant/procman/service/report"
)

// Store implements a file system backed report store
type Store struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ report.Store = (*Store)(nil)

// Save persists a report as <baseURL>/<runID>.json
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	if r == nil {
		return report.ErrNilEntity
	}
	if r.RunID == "" {
		return report.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	URL := s.reportURL(r.RunID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save report to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a report
func (s *Store) Load(ctx context.Context, runID string) (*report.Report, error) {
	if runID == "" {
		return nil, report.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.reportURL(runID)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check report %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", report.ErrNotFound, runID)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", URL, err)
	}
	ret := &report.Report{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", URL, err)
	}
	return ret, nil
}

// Delete removes a report
func (s *Store) Delete(ctx context.Context, runID string) error {
	if runID == "" {
		return report.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.reportURL(runID)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check report %s: %w", URL, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", report.ErrNotFound, runID)
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", URL, err)
	}
	return nil
}

// List returns all reports ordered by creation time
func (s *Store) List(ctx context.Context) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.baseURL)
	if err != nil || !exists {
		return nil, err
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	var ret []*report.Report
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", object.URL(), err)
		}
		r := &report.Report{}
		if err = json.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report %s: %w", object.URL(), err)
		}
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

func (s *Store) reportURL(runID string) string {
	return url.Join(s.baseURL, runID+".json")
}

// New creates a store rooted at baseURL
func New(fs afs.Service, baseURL string) *Store {
	return &Store{fs: fs, baseURL: baseURL}
}
