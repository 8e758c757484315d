package workload

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/viant/procman/model"
)

// ErrDuplicateName is returned when two processes share a name
var ErrDuplicateName = errors.New("workload: duplicate process name")

// Document is the YAML workload layout
type Document struct {
	Processes []*model.Process `yaml:"processes"`
}

// Service loads workloads
type Service struct {
	fs        afs.Service
	fsOptions []storage.Option
}

// Load downloads, decodes, validates and sorts a workload
func (s *Service) Load(ctx context.Context, URL string) ([]*model.Process, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load workload from %s: %w", URL, err)
	}
	var processes []*model.Process
	switch strings.ToLower(path.Ext(url.Path(URL))) {
	case ".yaml", ".yml":
		processes, err = DecodeYAML(data)
	default:
		processes, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode workload %s: %w", URL, err)
	}
	if err = Validate(processes); err != nil {
		return nil, fmt.Errorf("invalid workload %s: %w", URL, err)
	}
	Sort(processes)
	return processes, nil
}

// DecodeYAML decodes a YAML workload document
func DecodeYAML(data []byte) ([]*model.Process, error) {
	document := &Document{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return nil, err
	}
	for i, process := range document.Processes {
		if process == nil {
			return nil, fmt.Errorf("%w: empty process at %v", ErrSyntax, i)
		}
	}
	return document.Processes, nil
}

// Validate checks every process and name uniqueness
func Validate(processes []*model.Process) error {
	names := make(map[string]bool, len(processes))
	for _, process := range processes {
		if err := process.Validate(); err != nil {
			return err
		}
		if names[process.Name] {
			return fmt.Errorf("%w: %v", ErrDuplicateName, process.Name)
		}
		names[process.Name] = true
	}
	return nil
}

// Sort orders processes by arrival, keeping input order for equal arrivals
func Sort(processes []*model.Process) {
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].Arrival < processes[j].Arrival
	})
}

// New creates a workload service; options are passed to every download
// (for example an embed.FS for embed:// URLs)
func New(fs afs.Service, options ...storage.Option) *Service {
	return &Service{fs: fs, fsOptions: options}
}
