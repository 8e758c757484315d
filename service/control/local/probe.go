package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	glocal "github.com/viant/gosh/runner/local"
)

// ErrNotExecutable is returned when the worker binary cannot be executed
var ErrNotExecutable = errors.New("local: worker is not executable")

const probeTimeoutMs = 5000

// Probe checks in a local shell session that path names an executable file
func Probe(ctx context.Context, path string) error {
	service, err := gosh.New(ctx, glocal.New())
	if err != nil {
		return fmt.Errorf("failed to open probe session: %w", err)
	}
	defer service.Close()

	command := "test -f " + quote(path) + " && test -x " + quote(path)
	_, status, err := service.Run(ctx, command, runner.WithTimeout(probeTimeoutMs))
	if err != nil {
		return fmt.Errorf("failed to probe %v: %w", path, err)
	}
	if status != 0 {
		return fmt.Errorf("%w: %v", ErrNotExecutable, path)
	}
	return nil
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
