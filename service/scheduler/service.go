package scheduler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/markphelps/optional"
	"github.com/sirupsen/logrus"

	"github.com/viant/procman/internal/clock"
	"github.com/viant/procman/internal/logging"
	"github.com/viant/procman/model"
	"github.com/viant/procman/policy"
	"github.com/viant/procman/progress"
	"github.com/viant/procman/runtime/execution"
	"github.com/viant/procman/service/control"
	"github.com/viant/procman/service/event"
	"github.com/viant/procman/service/memory"
	"github.com/viant/procman/service/queue"
	"github.com/viant/procman/tracing"
)

// Service represents the simulation loop.  It is not safe for concurrent use.
type Service struct {
	config     Config
	controller *control.Service
	clock      *clock.Simulated
	space      *memory.Space
	notReady   *queue.Queue[execution.Process]
	input      *queue.Queue[execution.Process]
	ready      *queue.Queue[execution.Process]
	running    *execution.Process
	finished   []*execution.Process
	unfinished int
	less       queue.Less[execution.Process]
	collector  collector
	listener   event.Listener
	logger     *logrus.Logger
	progress   *progress.Progress
	runID      string
}

// Load wraps workload items into runtime records queued by arrival.  Items
// have to be sorted by arrival time.
func (s *Service) Load(processes []*model.Process) error {
	for i, process := range processes {
		if i > 0 && process.Arrival < processes[i-1].Arrival {
			return fmt.Errorf("scheduler: workload not sorted by arrival at %v", process.Name)
		}
		s.notReady.Push(execution.NewProcess(process))
	}
	s.unfinished += len(processes)
	s.progress.Update(progress.Delta{Total: len(processes), NotArrived: len(processes)})
	return nil
}

// Now returns current simulated time
func (s *Service) Now() int {
	return s.clock.Now()
}

// Done reports whether every loaded process has finished
func (s *Service) Done() bool {
	return s.unfinished == 0 && s.running == nil
}

// Running returns the running process or nil
func (s *Service) Running() *execution.Process {
	return s.running
}

// Finished returns completed processes in completion order
func (s *Service) Finished() []*execution.Process {
	return append([]*execution.Process(nil), s.finished...)
}

// Stats returns statistics of processes finished so far
func (s *Service) Stats() *Stats {
	return s.collector.stats(s.clock.Now())
}

// Run steps the simulation until every process finished.  Cancellation is
// only observed between steps.  Without a WithProgress tracker, the one
// carried by ctx (see progress.WithNewTracker) is adopted.
func (s *Service) Run(ctx context.Context) (stats *Stats, err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.run", "INTERNAL")
	span.WithAttributes(map[string]string{
		"runId":      s.runID,
		"discipline": string(s.config.Discipline),
		"memory":     string(s.config.Memory),
		"quantum":    strconv.Itoa(s.config.Quantum),
	})
	defer func() { tracing.EndSpan(span, err) }()

	if s.progress == nil {
		if tracker, ok := progress.FromContext(ctx); ok {
			s.progress = tracker
			tracker.Update(s.counts())
		}
	}
	for !s.Done() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if err = s.Step(ctx); err != nil {
			return nil, err
		}
	}
	return s.Stats(), nil
}

// Step runs exactly one iteration of the simulation loop
func (s *Service) Step(ctx context.Context) (err error) {
	now := s.clock.Now()
	ctx, span := tracing.StartSpan(ctx, "scheduler.step", "INTERNAL")
	span.WithAttributes(map[string]string{"runId": s.runID, "time": strconv.Itoa(now)})
	defer func() { tracing.EndSpan(span, err) }()

	procRemaining := s.ready.Len() + s.input.Len()
	if s.running != nil && s.running.Completed() {
		if err = s.complete(ctx, now, procRemaining); err != nil {
			return err
		}
	}
	if err = s.arrive(now); err != nil {
		return err
	}
	if err = s.admit(now); err != nil {
		return err
	}
	if s.config.Discipline.IsPreemptive() && s.running != nil && s.ready.Len() > 0 {
		if err = s.preempt(ctx, now); err != nil {
			return err
		}
	}
	if err = s.dispatch(ctx, now); err != nil {
		return err
	}
	if s.unfinished > 0 {
		s.clock.Tick()
		if s.running != nil {
			s.running.Run(s.clock.Quantum())
		}
	}
	return nil
}

func (s *Service) complete(ctx context.Context, now, procRemaining int) error {
	process := s.running
	process.Finished = now
	s.collector.add(process.Turnaround(), process.Overhead())
	s.emit(event.NewFinished(now, process.Name, procRemaining))

	digest, err := s.controller.Terminate(ctx, process.Handle, int32(now))
	if err != nil {
		return fmt.Errorf("failed to terminate %v: %w", process.Name, err)
	}
	process.Digest = digest
	if err = s.transition(process, execution.StateTerminated); err != nil {
		return err
	}
	s.emit(event.NewFinishedProcess(now, process.Name, digest))

	if id, err := process.Block.Get(); err == nil {
		if err = s.space.Free(memory.BlockID(id)); err != nil {
			return fmt.Errorf("failed to release memory of %v: %w", process.Name, err)
		}
	}
	s.finished = append(s.finished, process)
	s.unfinished--
	s.running = nil
	return nil
}

// arrive moves arrived processes to the input queue; the not-ready queue is
// sorted by arrival so the first future arrival ends the scan.
func (s *Service) arrive(now int) error {
	for process := s.notReady.Peek(); process != nil && process.Arrival <= now; process = s.notReady.Peek() {
		s.notReady.Pop()
		if err := s.transition(process, execution.StateInput); err != nil {
			return err
		}
		s.input.Push(process)
	}
	return nil
}

// admit makes a single pass over the processes queued for input when it
// started; processes failing allocation are re-appended and retried on the
// next step.
func (s *Service) admit(now int) error {
	if s.space == nil {
		for process := s.input.Pop(); process != nil; process = s.input.Pop() {
			if err := s.enqueueReady(process); err != nil {
				return err
			}
		}
		return nil
	}
	count := s.input.Len()
	for i := 0; i < count; i++ {
		process := s.input.Pop()
		id, ok := s.space.Allocate(process.Memory)
		if !ok {
			s.input.Push(process)
			continue
		}
		process.Block = optional.NewInt(int(id))
		if err := s.enqueueReady(process); err != nil {
			return err
		}
		block, _ := s.space.Block(id)
		s.emit(event.NewReady(now, process.Name, block.Start))
	}
	return nil
}

func (s *Service) enqueueReady(process *execution.Process) error {
	if err := s.transition(process, execution.StateReady); err != nil {
		return err
	}
	s.push(process)
	return nil
}

func (s *Service) push(process *execution.Process) {
	if s.less != nil {
		s.ready.Insert(process, s.less)
		return
	}
	s.ready.Push(process)
}

func (s *Service) preempt(ctx context.Context, now int) error {
	process := s.running
	if err := s.controller.Suspend(ctx, process.Handle, int32(now)); err != nil {
		return fmt.Errorf("failed to suspend %v: %w", process.Name, err)
	}
	if err := s.transition(process, execution.StateSuspended); err != nil {
		return err
	}
	s.push(process)
	s.running = nil
	return nil
}

// dispatch starts or resumes the next ready process.  A process that stays
// on the CPU is resumed with the current time on every step.
func (s *Service) dispatch(ctx context.Context, now int) error {
	if s.running != nil {
		if err := s.controller.Resume(ctx, s.running.Handle, int32(now)); err != nil {
			return fmt.Errorf("failed to continue %v: %w", s.running.Name, err)
		}
		return nil
	}
	process := s.ready.Pop()
	if process == nil {
		return nil
	}
	s.emit(event.NewRunning(now, process.Name, process.Remaining))
	if !process.Dispatched() {
		handle, err := s.controller.Start(ctx, process.Name, int32(now))
		if err != nil {
			return fmt.Errorf("failed to start %v: %w", process.Name, err)
		}
		process.Handle = handle
	} else if err := s.controller.Resume(ctx, process.Handle, int32(now)); err != nil {
		return fmt.Errorf("failed to resume %v: %w", process.Name, err)
	}
	if err := s.transition(process, execution.StateRunning); err != nil {
		return err
	}
	s.running = process
	return nil
}

func (s *Service) transition(process *execution.Process, next execution.State) error {
	previous := process.State
	if err := process.Transition(next); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"runId":   s.runID,
		"time":    s.clock.Now(),
		"process": process.Name,
		"pid":     process.PID(),
		"from":    previous,
		"to":      next,
	}).Debug("process transition")

	delta := progress.Delta{}
	apply(&delta, previous, -1)
	apply(&delta, next, 1)
	s.progress.Update(delta)
	return nil
}

// counts returns the current per-state population as a delta from zero
func (s *Service) counts() progress.Delta {
	ret := progress.Delta{
		NotArrived: s.notReady.Len(),
		Input:      s.input.Len(),
		Finished:   len(s.finished),
	}
	for _, process := range s.ready.Items() {
		apply(&ret, process.State, 1)
	}
	if s.running != nil {
		ret.Running = 1
	}
	ret.Total = ret.NotArrived + ret.Input + ret.Ready + ret.Suspended + ret.Running + ret.Finished
	return ret
}

func apply(delta *progress.Delta, state execution.State, value int) {
	switch state {
	case execution.StateNotArrived:
		delta.NotArrived += value
	case execution.StateInput:
		delta.Input += value
	case execution.StateReady:
		delta.Ready += value
	case execution.StateRunning:
		delta.Running += value
	case execution.StateSuspended:
		delta.Suspended += value
	case execution.StateTerminated:
		delta.Finished += value
	}
}

func (s *Service) emit(e *event.Event) {
	if s.listener != nil {
		s.listener(e)
	}
}

// New creates a simulation loop
func New(config Config, controller *control.Service, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if controller == nil {
		return nil, fmt.Errorf("scheduler: controller was nil")
	}
	discipline, _ := policy.ParseDiscipline(string(config.Discipline))
	strategy, _ := policy.ParseMemoryStrategy(string(config.Memory))
	config.Discipline, config.Memory = discipline, strategy

	ret := &Service{
		config:     config,
		controller: controller,
		clock:      clock.NewSimulated(0, config.Quantum),
		notReady:   queue.New[execution.Process]("notReady"),
		input:      queue.New[execution.Process]("input"),
		ready:      queue.New[execution.Process]("ready"),
	}
	if strategy.IsFinite() {
		ret.space = memory.New(config.MemoryLimit)
	}
	if discipline.IsOrdered() {
		ret.less = execution.Less(policy.Less)
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = logging.Discard()
	}
	return ret, nil
}
