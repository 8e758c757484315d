package workload

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/viant/procman/model"
)

func TestService_Load(t *testing.T) {
	testCases := []struct {
		description string
		URL         string
		content     string
		expected    []string
		expectErr   error
		shouldError bool
	}{
		{
			description: "text workload",
			URL:         "mem://localhost/workload/sjf.txt",
			content:     "0 P1 3 0\n1 P2 4 0\n",
			expected:    []string{"P1", "P2"},
		},
		{
			description: "unsorted workload is stable sorted by arrival",
			URL:         "mem://localhost/workload/unsorted.txt",
			content:     "3 P3 1 0\n0 P1 1 0\n3 P4 1 0\n0 P2 1 0\n",
			expected:    []string{"P1", "P2", "P3", "P4"},
		},
		{
			description: "yaml workload",
			URL:         "mem://localhost/workload/rr.yaml",
			content: `processes:
  - name: P1
    arrival: 0
    service: 2
    memory: 100
  - name: P2
    arrival: 0
    service: 2
`,
			expected: []string{"P1", "P2"},
		},
		{
			description: "duplicate name",
			URL:         "mem://localhost/workload/dup.txt",
			content:     "0 P1 3 0\n1 P1 4 0\n",
			expectErr:   ErrDuplicateName,
		},
		{
			description: "zero service",
			URL:         "mem://localhost/workload/zero.txt",
			content:     "0 P1 0 0\n",
			expectErr:   model.ErrInvalidService,
		},
		{
			description: "name too long",
			URL:         "mem://localhost/workload/long.yml",
			content:     "processes:\n  - name: PROCESS99\n    service: 1\n",
			expectErr:   model.ErrInvalidName,
		},
		{
			description: "syntax error",
			URL:         "mem://localhost/workload/bad.txt",
			content:     "0 P1\n",
			expectErr:   ErrSyntax,
		},
		{
			description: "missing workload",
			URL:         "mem://localhost/workload/missing.txt",
			shouldError: true,
		},
	}

	fs := afs.New()
	ctx := context.Background()
	srv := New(fs)
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if tc.content != "" {
				require.NoError(t, fs.Upload(ctx, tc.URL, file.DefaultFileOsMode, strings.NewReader(tc.content)))
			}
			processes, err := srv.Load(ctx, tc.URL)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			if tc.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, process := range processes {
				names = append(names, process.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}
