// Command procman simulates a process scheduler driving worker processes.
//
//	procman -f workload.txt -s SJF|RR -m infinite|best-fit -q quantum
//
// Settings can also come from a YAML config file (--config) or PROCMAN_*
// environment variables; flags win.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/viant/procman"
	"github.com/viant/procman/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	config, workload, err := loadConfig(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger, err := logging.New(config.Log.Level, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	srv, err := procman.New(config, procman.WithOutput(stdout), procman.WithLogger(logger))
	if err != nil {
		logger.WithError(err).Error("invalid configuration")
		return 2
	}
	if _, err = srv.Run(ctx, workload); err != nil {
		logger.WithError(err).Error("simulation failed")
		return 1
	}
	return 0
}

func loadConfig(args []string, stderr io.Writer) (*procman.Config, string, error) {
	defaults := procman.DefaultConfig()
	flags := pflag.NewFlagSet("procman", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("file", "f", "", "workload file or URL")
	flags.StringP("scheduler", "s", defaults.Scheduler, "scheduling discipline: SJF or RR")
	flags.StringP("memory", "m", defaults.Memory, "memory strategy: infinite or best-fit")
	flags.IntP("quantum", "q", defaults.Quantum, "simulated time quantum")
	flags.Int("memory-limit", defaults.MemoryLimit, "simulated memory size for best-fit")
	flags.String("worker", defaults.Worker.Kind, "worker kind: local or memory")
	flags.String("worker-path", defaults.Worker.Path, "worker binary path")
	flags.Bool("probe", defaults.Worker.Probe, "check the worker binary before the first spawn")
	flags.String("log-level", defaults.Log.Level, "log level")
	flags.Bool("trace", defaults.Tracing.Enabled, "export spans with the stdout exporter")
	flags.String("trace-file", defaults.Tracing.File, "span output file, stdout when empty")
	flags.String("report", defaults.Report.URL, "base URL for JSON run reports")
	flags.StringP("config", "c", "", "YAML config file")
	if err := flags.Parse(args); err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetDefault("scheduler", defaults.Scheduler)
	v.SetDefault("memory", defaults.Memory)
	v.SetDefault("memoryLimit", defaults.MemoryLimit)
	v.SetDefault("quantum", defaults.Quantum)
	v.SetDefault("worker.kind", defaults.Worker.Kind)
	v.SetDefault("worker.path", defaults.Worker.Path)
	v.SetDefault("worker.probe", defaults.Worker.Probe)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.file", defaults.Tracing.File)
	v.SetDefault("report.url", defaults.Report.URL)
	v.SetEnvPrefix("PROCMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"file":            "file",
		"scheduler":       "scheduler",
		"memory":          "memory",
		"quantum":         "quantum",
		"memoryLimit":     "memory-limit",
		"worker.kind":     "worker",
		"worker.path":     "worker-path",
		"worker.probe":    "probe",
		"log.level":       "log-level",
		"tracing.enabled": "trace",
		"tracing.file":    "trace-file",
		"report.url":      "report",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, "", err
		}
	}
	if configFile, _ := flags.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	config := &procman.Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, "", fmt.Errorf("failed to decode config: %w", err)
	}
	workload := v.GetString("file")
	if workload == "" {
		return nil, "", fmt.Errorf("workload file was not specified (-f)")
	}
	return config, workload, nil
}
